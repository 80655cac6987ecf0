package turtles

import (
	"bytes"
	"context"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/records"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"github.com/jlexm/turtle-tracker-svc/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

const auditTopic = "audit-topic"
const turtleTopic = "turtle-topic"
const staffToken = "token-1"

func init() {
	_ = os.Setenv(common.EnvProjectID, "project-id")
	_ = os.Setenv(common.EnvAuditLogTopic, auditTopic)
	_ = os.Setenv(common.EnvTurtleMessageTopic, turtleTopic)
}

func getRequest(method string, url string, body string, headers ...string) *http.Request {
	request := httptest.NewRequest(method, url, strings.NewReader(body))
	setHeaders(request, headers...)

	return request
}

func setHeaders(request *http.Request, headers ...string) {
	for _, header := range headers {
		switch header {
		case common.HeaderAcceptVersion:
			request.Header.Set(header, common.APIVersionV1)
		case common.HeaderAuthorization:
			request.Header.Set(header, common.BearerPrefix+staffToken)
		default:
			request.Header.Set(header, utils.GetRandomID(common.RandomIDLength))
		}
	}
}

// signedInRequest is a request carrying every mandatory header and the staff bearer token
func signedInRequest(method string, url string, body string) *http.Request {
	return getRequest(method, url, body,
		common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderAuthorization)
}

func multipartRequest(t *testing.T, method string, url string, turtleJSON string,
	fileName string, data []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if turtleJSON != "" {
		require.NoError(t, writer.WriteField(common.FormFieldTurtle, turtleJSON))
	}
	if data != nil {
		part, err := writer.CreateFormFile(common.FormFieldImage, fileName)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	request := httptest.NewRequest(method, url, body)
	request.Header.Set(common.HeaderContentType, writer.FormDataContentType())
	setHeaders(request, common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderAuthorization)

	return request
}

func signedIn(t *testing.T) *mocks.Authenticator {
	authenticator := mocks.NewAuthenticator(t)
	authenticator.On("Authenticate", mock.Anything, staffToken).
		Return(auth.User{ID: "u1", Email: "staff@turtles.org", IDToken: staffToken}, nil)

	return authenticator
}

func signedOut(t *testing.T) *mocks.Authenticator {
	authenticator := mocks.NewAuthenticator(t)
	authenticator.On("Authenticate", mock.Anything, mock.Anything).Return(auth.User{}, auth.ErrAuthFailure)

	return authenticator
}

func storedTurtle(id string, rescued time.Time, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"id":          id,
		"imageUrl":    "https://blob.example/turtle_images/" + id + "_abcde_shell.png",
		"dateRescued": rescued,
		"length":      30.0,
		"weight":      4.1,
		"location":    "North beach",
		"notes":       "Flipper wound",
		"turtleType":  "Green",
		"createdAt":   at,
		"updateDate":  at,
		"history": []interface{}{
			map[string]interface{}{"date": at, "changes": map[string]interface{}{
				"notes": "Flipper wound", "image": common.ImageUpdated,
			}},
		},
	}
}

func storedETag(t *testing.T, data map[string]interface{}) string {
	turtle, err := records.ParseTurtle(context.Background(), data)
	require.NoError(t, err)
	turtle, err = records.WithETag(turtle)
	require.NoError(t, err)

	return turtle.ETag
}
