package models

import (
	"github.com/jlexm/turtle-tracker-svc/common/auth"
	"time"
)

//nolint:lll
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,max=1024"`
}

// Session is the signed-in user as returned to the client. IDToken is only sent by the login.
type Session struct {
	UserID    string     `json:"user_id"`
	Email     string     `json:"email"`
	IDToken   string     `json:"id_token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func GetSession(user auth.User, withToken bool) Session {
	session := Session{
		UserID: user.ID,
		Email:  user.Email,
	}
	if withToken {
		session.IDToken = user.IDToken
	}
	if !user.ExpiresAt.IsZero() {
		expiresAt := user.ExpiresAt.UTC()
		session.ExpiresAt = &expiresAt
	}

	return session
}
