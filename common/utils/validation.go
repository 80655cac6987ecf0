package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/fatih/structs"
	"github.com/go-andiamo/urit"
	"github.com/go-playground/validator/v10"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var validate = validator.New()

func init() {
	_ = validate.RegisterValidation("disallowed", validateDisallowed, true)
	_ = validate.RegisterValidation("turtle_type", validateTurtleType)
	_ = validate.RegisterValidation("scan_timeout", validateScanTimeout)
}

type RequestBodyValidation struct {
	Entity             interface{}
	CompleteValidation bool
	// Upload, when set, lets the body arrive as multipart/form-data with the entity JSON in
	// the "turtle" field and an optional "image" file, which is read into Upload.
	Upload *models.Image
	// AllowEmpty accepts a body that decodes to a zero entity, such as a PATCH with no changes
	AllowEmpty bool
}

type RequestValidation struct {
	RequiredHeaders       []string
	RequiredQueryParams   []string
	RequiredPath          urit.Template
	RequestMethod         string
	RequestBodyValidation *RequestBodyValidation
}

// ValidateRequest is a common method to validate all types of requests
func ValidateRequest(request *http.Request,
	requestValidation RequestValidation) (map[string]string, *response.Response) {
	pathParams, validatePathError := validatePath(request, requestValidation.RequiredPath)
	validateMethodErrors := validateMethod(request, requestValidation.RequestMethod)
	validateHeaderErrors := validateHeaders(request, requestValidation.RequiredHeaders)
	validateQueryParamErrors := validateQueryParams(request, requestValidation.RequiredQueryParams)
	validationErrors := append(validateHeaderErrors, validateQueryParamErrors...)
	validationErrors = append(validationErrors, validateMethodErrors...)
	validationErrors = append(validationErrors, validatePathError...)
	if validationErrors != nil {
		return pathParams, &response.Response{
			Code:    http.StatusBadRequest,
			Message: "Request validation failed",
			Errors:  validationErrors,
		}
	}
	validateBodyResponse := validateBody(request, requestValidation.RequestBodyValidation)
	if validateBodyResponse != nil {
		return pathParams, validateBodyResponse
	}

	return pathParams, nil
}

// ValidateEntity runs the struct validate tags of entity, used for documents read back from the DB
func ValidateEntity(ctx context.Context, entity interface{}) error {
	return validate.StructCtx(ctx, entity)
}

// validateBody decodes the request body into the entity object and validates it
// based on struct validate tag using validator
func validateBody(request *http.Request, requestBodyValidation *RequestBodyValidation) *response.Response {
	if requestBodyValidation == nil {
		return nil
	}
	ctx := request.Context()
	var err error
	if requestBodyValidation.Upload != nil && isMultipart(request) {
		err = decodeMultipartBody(request, requestBodyValidation)
	} else {
		err = decodeJSON(request.Body, requestBodyValidation.Entity)
	}
	if err != nil || (structs.IsZero(requestBodyValidation.Entity) && !requestBodyValidation.Upload.HasData() &&
		!requestBodyValidation.AllowEmpty) {
		return jsonDecodeErrors(ctx, err, requestBodyValidation)
	}
	if requestBodyValidation.CompleteValidation {
		err = validate.StructCtx(ctx, requestBodyValidation.Entity)
	} else if validationFields := GetValidationFields(requestBodyValidation.Entity); len(validationFields) > 0 {
		err = validate.StructPartialCtx(ctx, requestBodyValidation.Entity, validationFields...)
	}

	if err != nil {
		var errs []string
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, e := range valErrs {
				errs = append(errs, e.Error())
			}
		}

		return &response.Response{
			Code:    http.StatusBadRequest,
			Message: "Request body validation failed",
			Errors:  errs,
		}
	}

	return nil
}

func decodeJSON(body io.Reader, entity interface{}) error {
	jsonDecoder := json.NewDecoder(body)
	jsonDecoder.DisallowUnknownFields()

	return jsonDecoder.Decode(entity)
}

func isMultipart(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get(common.HeaderContentType))

	return err == nil && mediaType == common.ContentTypeMultipartForm
}

// decodeMultipartBody reads the "turtle" JSON field and the optional "image" file
func decodeMultipartBody(request *http.Request, requestBodyValidation *RequestBodyValidation) error {
	request.Body = http.MaxBytesReader(nil, request.Body, common.MaxImageBytes+(1<<20))
	if err := request.ParseMultipartForm(common.MaxImageBytes); err != nil {
		return err
	}
	// files spilled to disk are only removed by the server for the request it created
	defer func() {
		_ = request.MultipartForm.RemoveAll()
	}()
	if entityJSON := request.FormValue(common.FormFieldTurtle); entityJSON != "" {
		if err := decodeJSON(strings.NewReader(entityJSON), requestBodyValidation.Entity); err != nil {
			return err
		}
	}
	file, header, err := request.FormFile(common.FormFieldImage)
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()
	if header.Size > common.MaxImageBytes {
		return fmt.Errorf("image larger than %d bytes", common.MaxImageBytes)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	requestBodyValidation.Upload.FileName = header.Filename
	requestBodyValidation.Upload.ContentType = header.Header.Get(common.HeaderContentType)
	requestBodyValidation.Upload.Data = data

	return nil
}

func validateDisallowed(fieldLevel validator.FieldLevel) bool {
	return fieldLevel.Field().IsZero()
}

func validateTurtleType(fieldLevel validator.FieldLevel) bool {
	return models.IsTurtleType(fieldLevel.Field().String())
}

// validateScanTimeout accepts a positive duration no longer than common.MaxScanTimeout
func validateScanTimeout(fieldLevel validator.FieldLevel) bool {
	timeout, err := time.ParseDuration(fieldLevel.Field().String())

	return err == nil && timeout > 0 && timeout <= common.MaxScanTimeout
}

func validateHeaders(request *http.Request, requiredHeaders []string) []string {
	var errs []string
	var missingHeaders []string
	for _, header := range requiredHeaders {
		if request.Header.Get(header) == "" {
			missingHeaders = append(missingHeaders, header)
		} else {
			switch header {
			case common.HeaderAcceptVersion:
				errs = append(errs, validateAcceptVersion(request, header)...)
			case common.HeaderPageSize:
				errs = append(errs, validatePageSize(request, header)...)
			case common.HeaderPageToken:
				errs = append(errs, ValidatePageToken(request, header)...)
			}
		}
	}
	if len(missingHeaders) > 0 {
		errs = append(errs, fmt.Sprintf("Request does not have the required headers : %v", missingHeaders))
	}

	return errs
}

func validateQueryParams(request *http.Request, requiredQueryParams []string) []string {
	var errs []string
	var missingQueryParams []string
	for _, queryParam := range requiredQueryParams {
		if !request.URL.Query().Has(queryParam) {
			missingQueryParams = append(missingQueryParams, queryParam)
		}
	}
	if len(missingQueryParams) > 0 {
		errs = append(errs, fmt.Sprintf("Request does not have the required query params : %v", missingQueryParams))
	}

	return errs
}

// GetValidationFields returns the names of the non-zero fields of data
func GetValidationFields(data interface{}) []string {
	var fields []string
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !v.Field(i).IsZero() {
			fields = append(fields, t.Field(i).Name)
		}
	}

	return fields
}

func validateAcceptVersion(request *http.Request, header string) []string {
	var errs []string
	if !Contains(common.GetSupportedVersions(), request.Header.Get(header)) {
		errs = append(errs, fmt.Sprintf("Unsupported value for header : %v", header))
	}

	return errs
}

func validatePageSize(request *http.Request, header string) []string {
	var errs []string
	pageSize, err := strconv.Atoi(request.Header.Get(header))
	if err != nil {
		errs = append(errs, fmt.Sprintf("Unsupported value for header : %v", header))
	} else if pageSize > common.MaxPageSize || pageSize < common.MinPageSize {
		errs = append(errs, fmt.Sprintf("%s must be between %d to %d",
			common.HeaderPageSize, common.MinPageSize, common.MaxPageSize))
	}

	return errs
}

func validatePath(request *http.Request, apiPath urit.Template) (map[string]string, []string) {
	pathParams := make(map[string]string)
	var errs []string
	if apiPath == nil {
		return pathParams, errs
	}
	result, match := apiPath.Matches(request.URL.Path)
	if !match {
		return nil,
			append(errs, fmt.Sprintf("Invalid request url path, no matching path params found in path : %s", request.URL.Path))
	}
	for _, pathVar := range result.GetAll() {
		value, ok := pathVar.Value.(string)
		if value == "" || !ok {
			errs = append(errs,
				fmt.Sprintf("Invalid request url path, no valid matching path params found in path for %s", pathVar.Name))
		}
		pathParams[pathVar.Name] = value
	}

	return pathParams, errs
}

func validateMethod(request *http.Request, method string) []string {
	var errs []string
	if request.Method != method {
		errs = append(errs, "Invalid request method, send request with correct method")
	}

	return errs
}

func jsonDecodeErrors(ctx context.Context, err error, requestBodyValidation *RequestBodyValidation) *response.Response {
	var errs []string
	logging.GetLoggerFromContext(ctx).Debugf("Error occurred while converting json body to struct : %v", err)
	if err != nil {
		errs = append(errs, err.Error())
	}
	if err == nil && structs.IsZero(requestBodyValidation.Entity) {
		errs = append(errs, "Empty JSON received, please input valid JSON in body")
	}

	return &response.Response{
		Code:    http.StatusBadRequest,
		Message: "Please input correct JSON in request body",
		Errors:  errs,
	}
}
