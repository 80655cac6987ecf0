package utils

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/packer-plugin-sdk/random"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"net/http"
	"reflect"
)

// GetETag hashes the JSON form of a document map or struct.
// Structs are first turned into a map through their json tags so that a struct and the
// document map it was read from produce the same etag.
func GetETag(data interface{}) (string, error) {
	if data == nil {
		return "", errors.New("nil data, returning empty etag")
	}
	value := reflect.ValueOf(data)
	for value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	switch value.Kind() {
	case reflect.Map:
		byteArray, err := json.Marshal(data)
		if err != nil {
			return "", err
		}

		return computeEtag(byteArray), nil
	case reflect.Struct:
		var dataMap map[string]interface{}
		if err := ConvertToObject(data, &dataMap); err != nil {
			return "", err
		}
		delete(dataMap, common.ETag)

		return GetETag(dataMap)
	default:
		return "", errors.New("type of data did not match map or struct, returning empty etag")
	}
}

// MatchesETag reports whether etag is the current etag of data.
func MatchesETag(data interface{}, etag string) (bool, error) {
	current, err := GetETag(data)
	if err != nil {
		return false, err
	}

	return current == etag, nil
}

func PopulateETags(data []map[string]interface{}, object interface{}) error {
	for _, dataMap := range data {
		etag, err := GetETag(dataMap)
		if err != nil {
			return err
		}
		dataMap[common.ETag] = etag
	}

	return ConvertToObject(data, object)
}

// computeEtag accepts []byte will compute the etag and return the hash in form of string
func computeEtag(data []byte) string {
	hash := sha256.Sum256(data)

	return fmt.Sprintf("%x", hash)
}

// Contains will return true if the s []string array contains the string str else false
func Contains(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}

// ConvertToObject is a generic method which will convert the map to the passed object type
func ConvertToObject(data interface{}, object interface{}) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return json.Unmarshal(bytes, object)
}

// GetRandomID common function to generate random lowercase alphanumeric ID of the given length
func GetRandomID(length int) string {
	return random.AlphaNumLower(length)
}

// GetSpanName will take the spanName as input and give you
// ServiceName. prefixed value which can be used for tracing
func GetSpanName(spanName string) string {
	return fmt.Sprintf("%s.%s", common.ServiceName, spanName)
}

// CreateResponseForGetAllByModel common response for the get all by Model
// last parameter is object of type which is to be added in array.
func CreateResponseForGetAllByModel[T any](ctx context.Context, responseWriter http.ResponseWriter,
	request *http.Request, data []map[string]interface{}, nextPageToken string, v T) {
	logger := logging.GetLoggerFromContext(ctx)
	var modelArray []T
	err := PopulateETags(data, &modelArray)
	if err != nil {
		logger.Errorf("Error while populating etags and converting to struct object : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}
	if modelArray == nil {
		modelArray = []T{}
	}

	response.Respond(responseWriter, http.StatusOK, modelArray,
		response.GetCommonResponseHeaders(request).WithHeader(common.HeaderNextPageToken, nextPageToken))
	logger.Debugf("%d %T successfully fetched from DB", len(modelArray), v)
}

// GetTurtleURL returns the resource path of a turtle record
func GetTurtleURL(turtleID string) string {
	return fmt.Sprintf("%s%s", common.TurtlePath, turtleID)
}
