package main

import (
	"context"
	"github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"testing"
	"time"
)

func TestCloseClients(t *testing.T) {
	t.Run("Auth state is torn down", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
		sessions := auth.NewSessions(mocks.NewProvider(t), time.Millisecond)
		auth.SessionsObj = sessions
		defer func() { auth.SessionsObj = nil }()
		calls := 0
		sessions.OnAuthChange(func(*auth.User) { calls++ })

		closeClients(logging.GetLoggerFromContext(context.Background()))

		_, err := sessions.SignIn(context.Background(), "staff@turtles.org", "secret")
		assert.Equal(t, auth.ErrClosed, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Nothing was created", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
		assert.NotPanics(t, func() {
			closeClients(logging.GetLoggerFromContext(context.Background()))
		})
	})
}
