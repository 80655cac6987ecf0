package auth

import (
	"context"
	"errors"
	"fmt"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
	"net/http"
	"os"
	"time"
)

// ErrAuthFailure the credentials or the token were rejected
var ErrAuthFailure = errors.New("authentication failed")

// User is a signed-in staff member
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IDToken   string    `json:"idToken,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Provider is the identity provider staff sign in against
type Provider interface {
	VerifyPassword(ctx context.Context, email string, password string) (User, error)
	LookupToken(ctx context.Context, idToken string) (User, error)
}

// IdentityToolkit is a Provider backed by the Google Identity Toolkit REST API
type IdentityToolkit struct {
	service *identitytoolkit.Service
	now     func() time.Time
}

// NewIdentityToolkit creates the provider with the passed client options
func NewIdentityToolkit(ctx context.Context, opts ...option.ClientOption) (*IdentityToolkit, error) {
	service, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &IdentityToolkit{service: service, now: time.Now}, nil
}

// NewIdentityToolkitFromEnv creates the provider authenticated with the IDENTITY_API_KEY web API key
func NewIdentityToolkitFromEnv(ctx context.Context) (*IdentityToolkit, error) {
	apiKey := os.Getenv(common.EnvIdentityAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s required", common.EnvIdentityAPIKey)
	}

	return NewIdentityToolkit(ctx, option.WithAPIKey(apiKey))
}

// VerifyPassword signs the user in with email and password
func (p *IdentityToolkit) VerifyPassword(ctx context.Context, email string, password string) (User, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("auth.VerifyPassword"))
	defer span.End()
	resp, err := p.service.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return User{}, providerError(ctx, err)
	}

	return User{
		ID:        resp.LocalId,
		Email:     resp.Email,
		IDToken:   resp.IdToken,
		ExpiresAt: p.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// LookupToken returns the user an id token was issued to
func (p *IdentityToolkit) LookupToken(ctx context.Context, idToken string) (User, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("auth.LookupToken"))
	defer span.End()
	resp, err := p.service.Relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		return User{}, providerError(ctx, err)
	}
	if len(resp.Users) == 0 || resp.Users[0].Disabled {
		return User{}, fmt.Errorf("%w: no active account for token", ErrAuthFailure)
	}

	return User{
		ID:        resp.Users[0].LocalId,
		Email:     resp.Users[0].Email,
		IDToken:   idToken,
		ExpiresAt: p.now().Add(common.SessionCacheTime),
	}, nil
}

// providerError maps rejected credentials to ErrAuthFailure, anything else stays an infrastructure error
func providerError(ctx context.Context, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			logging.GetLoggerFromContext(ctx).Debugf("Identity provider rejected the request : %s", apiErr.Message)

			return fmt.Errorf("%w: %s", ErrAuthFailure, apiErr.Message)
		}
	}
	logging.GetLoggerFromContext(ctx).Errorf("Error occurred while calling the identity provider : %v", err)

	return fmt.Errorf("identity provider: %w", err)
}
