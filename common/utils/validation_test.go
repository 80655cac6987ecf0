package utils

import (
	"bytes"
	"github.com/go-andiamo/urit"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestValidateHeaders(t *testing.T) {
	type args struct {
		r               *http.Request
		requiredHeaders []string
	}
	type testCase struct {
		name string
		args args
		want []string
	}

	tests := []testCase{
		{
			"All required headers are present",
			args{
				getRequest(http.MethodGet, "/", "", common.HeaderXCorrelationID,
					common.HeaderAcceptVersion),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion},
			},
			nil,
		},
		{
			"Request with valid page_token header",
			args{
				getRequest(http.MethodGet, "/", "", common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageToken),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageToken},
			},
			nil,
		},
		{
			"Request with invalid page_token header",
			args{
				getRequest(http.MethodGet, "/", "", common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageToken),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageToken},
			},
			[]string{"Invalid header value, unable to decrypt header : page_token"},
		},
		{
			"Request with valid page_size header",
			args{
				getRequest(http.MethodGet, "/", "", common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageSize),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageSize},
			},
			nil,
		},
		{
			"Request with invalid page_size header",
			args{
				getRequest(http.MethodGet, "/", "", common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageSize),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageSize},
			},
			[]string{"Unsupported value for header : page_size"},
		},
		{
			"Request with overlimit page_size header",
			args{
				getRequest(http.MethodGet, "/", "", common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageSize),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion, common.HeaderPageSize},
			},
			[]string{"page_size must be between 2 to 100"},
		},
		{
			"Only one required headers is present",
			args{
				getRequest(http.MethodGet, "/", "", common.HeaderAcceptVersion),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion},
			},
			[]string{"Request does not have the required headers : [X-Correlation-ID]"},
		},
		{
			"Only one required headers is present with wrong value",
			args{
				getRequest(http.MethodGet, "/", "", common.HeaderAcceptVersion),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion},
			},
			[]string{
				"Unsupported value for header : Accept-Version",
				"Request does not have the required headers : [X-Correlation-ID]",
			},
		},
		{
			"No required headers is present",
			args{
				getRequest(http.MethodGet, "/", ""),
				[]string{common.HeaderXCorrelationID, common.HeaderAcceptVersion},
			},
			[]string{"Request does not have the required headers : [X-Correlation-ID Accept-Version]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "Only one required headers is present with wrong value" {
				tt.args.r.Header.Set(common.HeaderAcceptVersion, "v2")
				if got := validateHeaders(tt.args.r, tt.args.requiredHeaders); !reflect.DeepEqual(got, tt.want) {
					t.Errorf("ValidateHeaders() = %v, want %v", got, tt.want)
				}
			} else if tt.name == "Request with invalid page_size header" {
				tt.args.r.Header.Set(common.HeaderPageSize, "v2")
				if got := validateHeaders(tt.args.r, tt.args.requiredHeaders); !reflect.DeepEqual(got, tt.want) {
					t.Errorf("ValidateHeaders() = %v, want %v", got, tt.want)
				}
			} else if tt.name == "Request with overlimit page_size header" {
				tt.args.r.Header.Set(common.HeaderPageSize, "200")
				if got := validateHeaders(tt.args.r, tt.args.requiredHeaders); !reflect.DeepEqual(got, tt.want) {
					t.Errorf("ValidateHeaders() = %v, want %v", got, tt.want)
				}
			} else if tt.name == "Request with invalid page_token header" {
				tt.args.r.Header.Set(common.HeaderPageToken, "invalid token")
				if got := validateHeaders(tt.args.r, tt.args.requiredHeaders); !reflect.DeepEqual(got, tt.want) {
					t.Errorf("ValidateHeaders() = %v, want %v", got, tt.want)
				}
			} else {
				if got := validateHeaders(tt.args.r, tt.args.requiredHeaders); !reflect.DeepEqual(got, tt.want) {
					t.Errorf("ValidateHeaders() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestQueryParams(t *testing.T) {
	type args struct {
		r                   *http.Request
		requiredQueryParams []string
	}
	type testCase struct {
		name string
		args args
		want []string
	}

	tests := []testCase{
		{
			"All required query params are present",
			args{
				getRequest(http.MethodGet, "/api?q1=1&q2=2&q3=3&q4=4", ""),
				[]string{"q1", "q2", "q3", "q4"},
			},
			nil,
		},
		{
			"Only one required query params is present",
			args{
				getRequest(http.MethodGet, "/api?q1=1", ""),
				[]string{"q1", "q2", "q3", "q4"},
			},
			[]string{"Request does not have the required query params : [q2 q3 q4]"},
		},
		{
			"No required query params is present",
			args{
				getRequest(http.MethodPost, "/api", "{}"),
				[]string{"q1", "q2", "q3", "q4"},
			},
			[]string{"Request does not have the required query params : [q1 q2 q3 q4]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateQueryParams(tt.args.r, tt.args.requiredQueryParams); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateHeaders() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type args struct {
		r                 *http.Request
		requestValidation RequestValidation
	}
	type testCase struct {
		name string
		args args
		want *response.Response
	}

	tests := []testCase{
		{
			"All required headers and query params are present",
			args{
				getRequest(http.MethodGet, "/api?q1=1234", "", common.HeaderXCorrelationID, common.HeaderAcceptVersion),
				RequestValidation{
					RequiredHeaders:     []string{common.HeaderXCorrelationID, common.HeaderAcceptVersion},
					RequiredQueryParams: []string{"q1"},
					RequestMethod:       http.MethodGet,
				},
			},
			nil,
		},
		{
			"All required headers and query params are not present",
			args{
				getRequest(http.MethodDelete, "/api?q1=1234", "", common.HeaderXCorrelationID),
				RequestValidation{
					RequiredHeaders:     []string{common.HeaderXCorrelationID, common.HeaderAcceptVersion},
					RequiredQueryParams: []string{"q2"},
					RequestMethod:       http.MethodDelete,
				},
			},
			&response.Response{
				Code:    400,
				Message: "Request validation failed",
				Errors: []string{"Request does not have the required headers : [Accept-Version]",
					"Request does not have the required query params : [q2]"},
			},
		},
		{
			"Invalid Body",
			args{
				getRequest(http.MethodPost, "/turtles", `{"location":"North beach"}`, common.HeaderXCorrelationID),
				RequestValidation{
					RequestMethod: http.MethodPost,
					RequestBodyValidation: &RequestBodyValidation{
						Entity:             &models.TurtleRequest{},
						CompleteValidation: true,
					},
				},
			},
			&response.Response{
				Code:    400,
				Message: "Request body validation failed",
				Errors: []string{
					"Key: 'TurtleRequest.DateRescued' Error:Field validation for 'DateRescued' failed on the 'required' tag",
					"Key: 'TurtleRequest.Length' Error:Field validation for 'Length' failed on the 'required' tag",
					"Key: 'TurtleRequest.Weight' Error:Field validation for 'Weight' failed on the 'required' tag",
					"Key: 'TurtleRequest.TurtleType' Error:Field validation for 'TurtleType' failed on the 'required' tag"},
			},
		},
		{
			"Invalid method in request",
			args{
				getRequest(http.MethodPost, "/api?q1=1234", "", common.HeaderXCorrelationID, common.HeaderAcceptVersion),
				RequestValidation{
					RequiredHeaders:     []string{common.HeaderXCorrelationID, common.HeaderAcceptVersion},
					RequiredQueryParams: []string{"q1"},
					RequestMethod:       http.MethodGet,
				},
			},
			&response.Response{
				Code:    400,
				Message: "Request validation failed",
				Errors:  []string{"Invalid request method, send request with correct method"},
			},
		},
		{
			"Path does not match",
			args{
				getRequest(http.MethodGet, "/turtles", "", common.HeaderXCorrelationID, common.HeaderAcceptVersion),
				RequestValidation{
					RequiredHeaders: []string{common.HeaderXCorrelationID, common.HeaderAcceptVersion},
					RequiredPath:    urit.MustCreateTemplate("/turtles/{turtle_id}/history"),
					RequestMethod:   http.MethodGet,
				},
			},
			&response.Response{
				Code:    400,
				Message: "Request validation failed",
				Errors:  []string{"Invalid request url path, no matching path params found in path : /turtles"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := ValidateRequest(tt.args.r, tt.args.requestValidation); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}

const validTurtle = `{"dateRescued":"2025-04-20","length":30.5,"weight":4.1,"location":"North beach",` +
	`"notes":"Flipper wound","turtleType":"Green"}`

func TestValidateBodyComplete(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *response.Response
	}{
		{
			"Incorrect JSON Entity",
			"{location:123}",
			response.NewResponse(http.StatusBadRequest, "Please input correct JSON in request body",
				[]string{"invalid character 'l' looking for beginning of object key string"}),
		},
		{
			"Empty JSON",
			"{}",
			response.NewResponse(http.StatusBadRequest, "Please input correct JSON in request body",
				[]string{"Empty JSON received, please input valid JSON in body"}),
		},
		{
			"Unknown field",
			`{"name":"Shelly"}`,
			response.NewResponse(http.StatusBadRequest, "Please input correct JSON in request body",
				[]string{`json: unknown field "name"`}),
		},
		{
			"Invalid rescue date and species",
			strings.Replace(strings.Replace(validTurtle, "2025-04-20", "20/04/2025", 1), "Green", "Dragon", 1),
			response.NewResponse(http.StatusBadRequest, "Request body validation failed",
				[]string{
					"Key: 'TurtleRequest.DateRescued' Error:Field validation for 'DateRescued' failed on the 'datetime' tag",
					"Key: 'TurtleRequest.TurtleType' Error:Field validation for 'TurtleType' failed on the 'turtle_type' tag"}),
		},
		{
			"Negative weight",
			strings.Replace(validTurtle, "4.1", "-4.1", 1),
			response.NewResponse(http.StatusBadRequest, "Request body validation failed",
				[]string{"Key: 'TurtleRequest.Weight' Error:Field validation for 'Weight' failed on the 'gt' tag"}),
		},
		{
			"All fields passed",
			validTurtle,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestBodyValidation := &RequestBodyValidation{
				Entity:             &models.TurtleRequest{},
				CompleteValidation: true,
			}
			assert.Equalf(t, tt.want, validateBody(getRequest(http.MethodPost, "/turtles", tt.body),
				requestBodyValidation), "validateBody( %v )", tt.body)
		})
	}
}

func TestValidateBodyPartial(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *response.Response
	}{
		{
			"Incorrect JSON Entity",
			"{notes:123546}",
			response.NewResponse(http.StatusBadRequest, "Please input correct JSON in request body",
				[]string{"invalid character 'n' looking for beginning of object key string"}),
		},
		{
			"Empty location",
			`{"location":""}`,
			response.NewResponse(http.StatusBadRequest, "Request body validation failed",
				[]string{"Key: 'TurtleChanges.Location' Error:Field validation for 'Location' failed on the 'min' tag"}),
		},
		{
			"Unknown species",
			`{"turtleType":"Dragon"}`,
			response.NewResponse(http.StatusBadRequest, "Request body validation failed",
				[]string{"Key: 'TurtleChanges.TurtleType' Error:Field validation for 'TurtleType' failed on the 'turtle_type' tag"}),
		},
		{
			"Rescue date can not be changed",
			`{"dateRescued":"2025-04-20"}`,
			response.NewResponse(http.StatusBadRequest, "Please input correct JSON in request body",
				[]string{`json: unknown field "dateRescued"`}),
		},
		{
			"Only the submitted fields are validated",
			`{"notes":"Eating well"}`,
			nil,
		},
		{
			"Clearing notes is a change",
			`{"notes":""}`,
			nil,
		},
		{
			"Freshwater species",
			`{"turtleType":"Red-eared Slider","weight":0.8}`,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestBodyValidation := &RequestBodyValidation{
				Entity:             &models.TurtleChanges{},
				CompleteValidation: false,
			}
			assert.Equalf(t, tt.want, validateBody(getRequest(http.MethodPatch, "/turtles/t1", tt.body),
				requestBodyValidation), "validateBody( %v )", tt.body)
		})
	}
}

func TestValidateBodyAllowEmpty(t *testing.T) {
	t.Run("Empty change set is accepted", func(t *testing.T) {
		changes := models.TurtleChanges{}
		got := validateBody(getRequest(http.MethodPatch, "/turtles/t1", `{}`), &RequestBodyValidation{
			Entity:     &changes,
			AllowEmpty: true,
		})
		assert.Nil(t, got)
		assert.Empty(t, changes.Submitted())
	})

	t.Run("Empty change set is rejected by default", func(t *testing.T) {
		got := validateBody(getRequest(http.MethodPatch, "/turtles/t1", `{}`), &RequestBodyValidation{
			Entity: &models.TurtleChanges{},
		})
		assert.Equal(t, response.NewResponse(http.StatusBadRequest, "Please input correct JSON in request body",
			[]string{"Empty JSON received, please input valid JSON in body"}), got)
	})

	t.Run("Missing body is still an error", func(t *testing.T) {
		got := validateBody(getRequest(http.MethodPatch, "/turtles/t1", ""), &RequestBodyValidation{
			Entity:     &models.TurtleChanges{},
			AllowEmpty: true,
		})
		assert.Equal(t, response.NewResponse(http.StatusBadRequest, "Please input correct JSON in request body",
			[]string{"EOF"}), got)
	})
}

func multipartBody(t *testing.T, turtleJSON string, fileName string, data []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if turtleJSON != "" {
		require.NoError(t, writer.WriteField(common.FormFieldTurtle, turtleJSON))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile(common.FormFieldImage, fileName)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	request := httptest.NewRequest(http.MethodPost, "/turtles", &body)
	request.Header.Set(common.HeaderContentType, writer.FormDataContentType())

	return request
}

func TestValidateBodyMultipart(t *testing.T) {
	t.Run("Turtle and image", func(t *testing.T) {
		var turtle models.TurtleRequest
		var image models.Image
		got := validateBody(multipartBody(t, validTurtle, "shell.png", []byte("png-bytes")), &RequestBodyValidation{
			Entity:             &turtle,
			CompleteValidation: true,
			Upload:             &image,
		})
		assert.Nil(t, got)
		assert.Equal(t, "North beach", turtle.Location)
		assert.Equal(t, "shell.png", image.FileName)
		assert.Equal(t, []byte("png-bytes"), image.Data)
		assert.Equal(t, "application/octet-stream", image.ContentType)
	})

	t.Run("Image only update", func(t *testing.T) {
		var changes models.TurtleChanges
		var image models.Image
		got := validateBody(multipartBody(t, "", "shell.png", []byte("png-bytes")), &RequestBodyValidation{
			Entity: &changes,
			Upload: &image,
		})
		assert.Nil(t, got)
		assert.True(t, image.HasData())
	})

	t.Run("Neither fields nor image", func(t *testing.T) {
		var changes models.TurtleChanges
		var image models.Image
		got := validateBody(multipartBody(t, "", "", nil), &RequestBodyValidation{
			Entity: &changes,
			Upload: &image,
		})
		assert.Equal(t, response.NewResponse(http.StatusBadRequest, "Please input correct JSON in request body",
			[]string{"Empty JSON received, please input valid JSON in body"}), got)
	})

	t.Run("Oversized image is rejected and leaves no temp file", func(t *testing.T) {
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)
		var turtle models.TurtleRequest
		var image models.Image
		got := validateBody(multipartBody(t, validTurtle, "shell.png", make([]byte, common.MaxImageBytes+1)),
			&RequestBodyValidation{
				Entity:             &turtle,
				CompleteValidation: true,
				Upload:             &image,
			})
		require.NotNil(t, got)
		assert.Equal(t, http.StatusBadRequest, got.Code)
		assert.False(t, image.HasData())
		entries, err := os.ReadDir(tmp)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Multipart is ignored when no upload is expected", func(t *testing.T) {
		var turtle models.TurtleRequest
		got := validateBody(multipartBody(t, validTurtle, "", nil), &RequestBodyValidation{
			Entity:             &turtle,
			CompleteValidation: true,
		})
		require.NotNil(t, got)
		assert.Equal(t, http.StatusBadRequest, got.Code)
	})
}

func TestValidateScanTimeout(t *testing.T) {
	type scan struct {
		Timeout string `validate:"omitempty,scan_timeout"`
	}
	for timeout, valid := range map[string]bool{
		"":      true,
		"250ms": true,
		"30s":   true,
		"31s":   false,
		"0s":    false,
		"-2s":   false,
		"soon":  false,
	} {
		err := validate.Struct(scan{Timeout: timeout})
		assert.Equalf(t, valid, err == nil, "timeout %q", timeout)
	}
}

func TestGetValidationFields(t *testing.T) {
	notes := "a"
	assert.Equal(t, []string{"Notes"}, GetValidationFields(&models.TurtleChanges{Notes: &notes}))
	assert.Nil(t, GetValidationFields(models.TurtleChanges{}))
}

func getRequest(method string, url string, body string, headers ...string) *http.Request {
	request := httptest.NewRequest(method, url, strings.NewReader(body))
	for _, header := range headers {
		if header == common.HeaderAcceptVersion {
			request.Header.Set(header, common.APIVersionV1)
		} else if header == common.HeaderPageToken {
			token, _ := GetNextPageToken("t12345", common.TurtlesEncryptionKey)
			request.Header.Set(header, token)
		} else if header == common.HeaderPageSize {
			request.Header.Set(header, "5")
		} else {
			request.Header.Set(header, GetRandomID(common.RandomIDLength))
		}
	}

	return request
}

func TestValidatePath(t *testing.T) {
	t.Run("Validate invalid path match", func(t *testing.T) {
		path := urit.MustCreateTemplate("/turtles/{turtle_id}")
		pathParam, err := validatePath(httptest.NewRequest(http.MethodGet, "/turtles", nil), path)
		assert.Nil(t, pathParam)
		assert.NotNil(t, err)
	})

	t.Run("Validate valid path match", func(t *testing.T) {
		path := urit.MustCreateTemplate("/turtles/{turtle_id}")
		pathParam, err := validatePath(httptest.NewRequest(http.MethodGet, "/turtles/t12345", nil), path)
		assert.NotNil(t, pathParam)
		assert.Empty(t, err)
		assert.Equal(t, "t12345", pathParam["turtle_id"])
	})

	t.Run("Validate empty path param", func(t *testing.T) {
		path := urit.MustCreateTemplate("/turtles/{turtle_id}")
		pathParam, err := validatePath(httptest.NewRequest(http.MethodGet, "/turtles/", nil), path)
		assert.Nil(t, pathParam)
		assert.NotNil(t, err)
	})
}

func TestValidateMethod(t *testing.T) {
	t.Run("Request method different", func(t *testing.T) {
		method := http.MethodPost
		err := validateMethod(httptest.NewRequest(http.MethodGet, "/turtles/", nil), method)
		assert.NotNil(t, err)
	})

	t.Run("Request method match", func(t *testing.T) {
		method := http.MethodGet
		err := validateMethod(httptest.NewRequest(http.MethodGet, "/turtles/", nil), method)
		assert.Nil(t, err)
	})
}
