package auth

import (
	"context"
	"errors"
	"fmt"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"log"
	"sync"
	"time"
)

// ErrClosed the sessions were closed
var ErrClosed = errors.New("sessions closed")

// Authenticator signs staff in and out and resolves bearer tokens to users
type Authenticator interface {
	SignIn(ctx context.Context, email string, password string) (User, error)
	SignOut(ctx context.Context, idToken string) error
	Authenticate(ctx context.Context, idToken string) (User, error)
}

type cachedUser struct {
	user    User
	validTo time.Time
}

// Sessions is the process wide authentication state: the signed-in user, the tokens already
// verified with the provider and the tokens signed out. Listeners registered with OnAuthChange
// hear about every sign in and sign out until they unsubscribe or the sessions are closed.
type Sessions struct {
	provider Provider
	now      func() time.Time

	mu        sync.Mutex
	current   *User
	verified  map[string]cachedUser
	revoked   map[string]time.Time
	listeners map[int]func(*User)
	nextID    int
	closed    bool

	stop chan struct{}
	done chan struct{}
}

var SessionsObj *Sessions
var sessionsOnce sync.Once

// NewSessions starts the sessions. Expired tokens are evicted every evictEvery until Close.
func NewSessions(provider Provider, evictEvery time.Duration) *Sessions {
	return newSessions(provider, evictEvery, time.Now)
}

func newSessions(provider Provider, evictEvery time.Duration, now func() time.Time) *Sessions {
	s := &Sessions{
		provider:  provider,
		now:       now,
		verified:  make(map[string]cachedUser),
		revoked:   make(map[string]time.Time),
		listeners: make(map[int]func(*User)),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.evictLoop(evictEvery)

	return s
}

// NewSessionsFromEnv returns the shared Sessions backed by the Identity Toolkit
func NewSessionsFromEnv(ctx context.Context) *Sessions {
	sessionsOnce.Do(func() {
		provider, err := NewIdentityToolkitFromEnv(ctx)
		if err != nil {
			log.Fatalf("Failed to create identity provider: %v", err)
		}
		SessionsObj = NewSessions(provider, common.SessionCacheTime)
	})

	return SessionsObj
}

// SignIn verifies the credentials and makes the user the current one
func (s *Sessions) SignIn(ctx context.Context, email string, password string) (User, error) {
	if s.isClosed() {
		return User{}, ErrClosed
	}
	user, err := s.provider.VerifyPassword(ctx, email, password)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return User{}, ErrClosed
	}
	s.verified[user.IDToken] = cachedUser{user: user, validTo: s.validTo(user)}
	delete(s.revoked, user.IDToken)
	signedIn := user
	s.current = &signedIn
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	logging.GetLoggerFromContext(ctx).Infof("User %s signed in", user.ID)
	notify(listeners, &signedIn)

	return user, nil
}

// SignOut forgets the token; it is refused by Authenticate from now on
func (s *Sessions) SignOut(ctx context.Context, idToken string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return ErrClosed
	}
	expiresAt := s.now().Add(common.IDTokenLifetime)
	if cached, ok := s.verified[idToken]; ok {
		expiresAt = cached.user.ExpiresAt
		delete(s.verified, idToken)
	}
	s.revoked[idToken] = expiresAt
	var listeners []func(*User)
	if s.current != nil && s.current.IDToken == idToken {
		s.current = nil
		listeners = s.snapshotListeners()
	}
	s.mu.Unlock()

	logging.GetLoggerFromContext(ctx).Infof("Session signed out")
	notify(listeners, nil)

	return nil
}

// Authenticate resolves a bearer token to its user, asking the provider only when the token is not cached
func (s *Sessions) Authenticate(ctx context.Context, idToken string) (User, error) {
	if idToken == "" {
		return User{}, fmt.Errorf("%w: missing token", ErrAuthFailure)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return User{}, ErrClosed
	}
	if _, ok := s.revoked[idToken]; ok {
		s.mu.Unlock()

		return User{}, fmt.Errorf("%w: signed out", ErrAuthFailure)
	}
	if cached, ok := s.verified[idToken]; ok && s.now().Before(cached.validTo) {
		s.mu.Unlock()

		return cached.user, nil
	}
	s.mu.Unlock()

	user, err := s.provider.LookupToken(ctx, idToken)
	if err != nil {
		return User{}, err
	}
	s.mu.Lock()
	if _, revoked := s.revoked[idToken]; !revoked && !s.closed {
		s.verified[idToken] = cachedUser{user: user, validTo: s.validTo(user)}
	}
	s.mu.Unlock()

	return user, nil
}

// OnAuthChange registers callback, which is called right away with the current user and then on
// every sign in (with the user) and sign out (with nil). The returned func unsubscribes.
func (s *Sessions) OnAuthChange(callback func(*User)) (unsubscribe func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = callback
	var current *User
	if s.current != nil {
		user := *s.current
		current = &user
	}
	s.mu.Unlock()

	callback(current)
	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Close drops every listener and cached token and stops the eviction loop
func (s *Sessions) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return
	}
	s.closed = true
	s.current = nil
	s.listeners = make(map[int]func(*User))
	s.verified = make(map[string]cachedUser)
	s.revoked = make(map[string]time.Time)
	s.mu.Unlock()

	close(s.stop)
	<-s.done
}

func (s *Sessions) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// validTo is when a cached token has to be checked with the provider again
func (s *Sessions) validTo(user User) time.Time {
	validTo := s.now().Add(common.SessionCacheTime)
	if !user.ExpiresAt.IsZero() && user.ExpiresAt.Before(validTo) {
		return user.ExpiresAt
	}

	return validTo
}

// snapshotListeners must be called with mu held
func (s *Sessions) snapshotListeners() []func(*User) {
	listeners := make([]func(*User), 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}

	return listeners
}

func notify(listeners []func(*User), user *User) {
	for _, listener := range listeners {
		if user == nil {
			listener(nil)

			continue
		}
		copied := *user
		listener(&copied)
	}
}

func (s *Sessions) evictLoop(every time.Duration) {
	defer close(s.done)
	if every <= 0 {
		every = common.SessionCacheTime
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evict()
		}
	}
}

func (s *Sessions) evict() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for token, cached := range s.verified {
		if !now.Before(cached.validTo) {
			delete(s.verified, token)
		}
	}
	for token, expiresAt := range s.revoked {
		if !now.Before(expiresAt) {
			delete(s.revoked, token)
		}
	}
}
