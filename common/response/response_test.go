package response

import (
	"errors"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/stretchr/testify/assert"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func getRequest(method string, url string, body string, headers ...string) *http.Request {
	request := httptest.NewRequest(method, url, strings.NewReader(body))
	for _, header := range headers {
		if header == common.HeaderAcceptVersion {
			request.Header.Set(header, common.APIVersionV1)
		} else {
			request.Header.Set(header, "c0rr3l4t10n")
		}
	}

	return request
}

func TestGetCommonResponseHeaders(t *testing.T) {
	tests := []struct {
		name          string
		request       *http.Request
		headerMapKeys []string
		absentKeys    []string
	}{
		{
			"Request with correlation ID header",
			getRequest(http.MethodGet, "/turtles", "", common.HeaderXCorrelationID),
			[]string{common.HeaderContentType, common.HeaderXCorrelationID},
			nil,
		},
		{
			"Request without correlation ID header",
			getRequest(http.MethodGet, "/turtles", "", common.HeaderAcceptVersion),
			[]string{common.HeaderContentType},
			[]string{common.HeaderXCorrelationID},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetCommonResponseHeaders(tt.request)
			for _, key := range tt.headerMapKeys {
				assert.NotEmpty(t, got[key])
			}
			for _, key := range tt.absentKeys {
				assert.NotContains(t, got, key)
			}
		})
	}
}

func TestHeaderMap_WithHeader(t *testing.T) {
	headers := GetCommonResponseHeaders(getRequest(http.MethodGet, "/", "")).
		WithHeader("key", "value").
		WithHeader("empty", "")
	assert.Equal(t, "value", headers["key"])
	assert.NotContains(t, headers, "empty")
}

func TestRespondWithInternalServerError(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	RespondWithInternalServerError(recorder, request)
	result := recorder.Result()
	data, _ := io.ReadAll(result.Body)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.Equal(t, common.ContentTypeApplicationJSON, result.Header.Get(common.HeaderContentType))
	assert.Equal(t, "{\"code\":500,\"message\":\"Internal server error occurred. Please check logs for more details.\"}", string(data))
}

func TestRespondWithNotFoundErrorMessage(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	message := "Turtle ID abc not found"
	RespondWithNotFoundErrorMessage(recorder, request, message, errors.New(message))
	result := recorder.Result()
	data, _ := io.ReadAll(result.Body)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Equal(t, "{\"code\":404,\"message\":\"Turtle ID abc not found\"}", string(data))
}

func TestRespondWithUnauthorized(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	RespondWithUnauthorized(recorder, request, "Please sign in")
	data, _ := io.ReadAll(recorder.Result().Body)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "{\"code\":401,\"message\":\"Please sign in\"}", string(data))
}

func TestRespondWithPreconditionFailed(t *testing.T) {
	request := httptest.NewRequest(http.MethodPatch, "/", nil)
	recorder := httptest.NewRecorder()
	RespondWithPreconditionFailed(recorder, request)
	data, _ := io.ReadAll(recorder.Result().Body)
	assert.Equal(t, http.StatusPreconditionFailed, recorder.Code)
	assert.Equal(t, "{\"code\":412,\"message\":\"If-Match header value incorrect, please get the latest and try again\"}", string(data))
}

func TestRespondWithoutBody(t *testing.T) {
	recorder := httptest.NewRecorder()
	RespondWithoutBody(recorder, http.StatusSeeOther, map[string]string{common.HeaderLocation: "/turtles/abc"})
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/turtles/abc", recorder.Header().Get(common.HeaderLocation))
	assert.Empty(t, recorder.Body.Bytes())
}

func TestNewResponse(t *testing.T) {
	t.Run("NewResponse with errors", func(t *testing.T) {
		errorList := []string{"length must be positive", "weight must be positive"}
		response := NewResponse(http.StatusBadRequest, "Request body validation failed", errorList)
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Equal(t, "Request body validation failed", response.Message)
		assert.Equal(t, errorList, response.Errors)
	})
	t.Run("NewResponse with empty errors drops them", func(t *testing.T) {
		response := NewResponse(http.StatusOK, "ok", []string{})
		assert.Nil(t, response.Errors)
	})
}

func TestRespond(t *testing.T) {
	t.Run("Invalid Response Object", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		Respond(recorder, http.StatusOK, map[string]interface{}{
			"foo": make(chan int),
		}, nil)
		bytes, _ := io.ReadAll(recorder.Body)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, []byte("Unable to serialize response body"), bytes)
	})
}
