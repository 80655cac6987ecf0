package records

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound no turtle record exists under the requested id
	ErrNotFound = errors.New("turtle record not found")
	// ErrUploadFailure the image could not be written to the blob store
	ErrUploadFailure = errors.New("image upload failed")
	// ErrWriteFailure the document store rejected a write or delete
	ErrWriteFailure = errors.New("turtle record write failed")
	// ErrPreconditionFailed the If-Match etag no longer matches the stored record
	ErrPreconditionFailed = errors.New("turtle record changed since it was read")
	// ErrInvalidRecord a stored document does not parse into a valid turtle record
	ErrInvalidRecord = errors.New("stored turtle record is invalid")
)

// StatusCode maps an engine error to the HTTP status reported to the caller
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrUploadFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
