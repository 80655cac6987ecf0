package auth

import (
	"context"
	"errors"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"net/http"
	"strings"
)

type ctxUser struct{}

// BearerToken returns the token of the Authorization header, empty when there is none
func BearerToken(request *http.Request) string {
	header := request.Header.Get(common.HeaderAuthorization)
	if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return ""
	}

	return strings.TrimSpace(header[len(common.BearerPrefix):])
}

// RequireUser authenticates the bearer token of the request. When it fails the response is
// written (401, or 500 when the provider could not be reached) and ok is false.
// On success the returned request carries the user in its context.
func RequireUser(responseWriter http.ResponseWriter, request *http.Request,
	authenticator Authenticator) (*http.Request, User, bool) {
	logger := logging.GetLoggerFromContext(request.Context())
	user, err := authenticator.Authenticate(request.Context(), BearerToken(request))
	if err != nil {
		if errors.Is(err, ErrAuthFailure) || errors.Is(err, ErrClosed) {
			logger.Debugf("Request not authenticated : %v", err)
			response.RespondWithUnauthorized(responseWriter, request, "Please sign in to continue")
		} else {
			logger.Errorf("Error occurred while authenticating the request : %v", err)
			response.RespondWithInternalServerError(responseWriter, request)
		}

		return request, User{}, false
	}

	return request.WithContext(WithUser(request.Context(), user)), user, true
}

// WithUser returns a copy of ctx carrying user
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, ctxUser{}, user)
}

// UserFromContext returns the user stored by WithUser
func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(ctxUser{}).(User)

	return user, ok
}
