// Package session holds the signed-in user for one portal instance (the
// CLI process, or one browser session in the web portal).
//
// A Store is created unready. Restore reads persisted state exactly once
// and flips it ready; views must not render protected content before
// that. Login, Register and Logout report their outcome through a
// notify.Notifier and never return errors: failures are shown, not raised.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/dmitrijs2005/prescreen/internal/client/services"
	"github.com/dmitrijs2005/prescreen/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	loginFailedMessage    = "Invalid ID or Password"
	registerFailedMessage = "Registration failed"
	registeredMessage     = "Registration successful! Please login."
	loggedOutMessage      = "Logged out successfully"
	idFoundMessage        = "User ID Found!"
	idNotFoundMessage     = "No account found with that email."
)

// Repository persists the session record between runs.
type Repository interface {
	Load(ctx context.Context) (*models.SessionRecord, error)
	Save(ctx context.Context, rec models.SessionRecord) error
	Clear(ctx context.Context) error
}

// Session is the read-only view handed to views and the route guard.
type Session struct {
	User            *models.User
	IsAuthenticated bool
	Role            models.Role
}

// RestoreResult tells the caller what Restore found.
type RestoreResult int

const (
	// RestoreAnonymous: nothing usable was stored.
	RestoreAnonymous RestoreResult = iota
	// RestoreAuthenticated: a token and user were loaded.
	RestoreAuthenticated
	// RestoreExpired: a stored token had passed its exp claim and was discarded.
	RestoreExpired
)

func (r RestoreResult) String() string {
	switch r {
	case RestoreAuthenticated:
		return "authenticated"
	case RestoreExpired:
		return "expired"
	default:
		return "anonymous"
	}
}

type Store struct {
	repo     Repository
	auth     services.AuthService
	notifier notify.Notifier
	logger   logging.Logger
	now      func() time.Time

	mu    sync.RWMutex
	token string
	user  *models.User
	ready bool
}

func NewStore(repo Repository, auth services.AuthService, notifier notify.Notifier, logger logging.Logger) *Store {
	return &Store{
		repo:     repo,
		auth:     auth,
		notifier: notifier,
		logger:   logger.With("module", "session"),
		now:      time.Now,
	}
}

// Restore loads the persisted record. A record is accepted only when both
// token and user are present and the token, if it is a JWT carrying exp,
// has not expired. Anything else is cleared. The store is ready once
// Restore returns, whatever the outcome.
func (s *Store) Restore(ctx context.Context) (RestoreResult, error) {
	defer s.markReady()

	rec, err := s.repo.Load(ctx)
	if err != nil {
		return RestoreAnonymous, fmt.Errorf("load session: %w", err)
	}
	if rec == nil {
		return RestoreAnonymous, nil
	}
	if !rec.Complete() {
		s.logger.Warn(ctx, "discarding incomplete session record")
		return RestoreAnonymous, s.clearRepo(ctx)
	}
	if expired(rec.Token, s.now()) {
		s.logger.Info(ctx, "stored token expired", "user", rec.User.Username)
		return RestoreExpired, s.clearRepo(ctx)
	}

	s.mu.Lock()
	s.token, s.user = rec.Token, rec.User
	s.mu.Unlock()
	return RestoreAuthenticated, nil
}

func (s *Store) markReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

func (s *Store) clearRepo(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// expired reports whether token is a JWT whose exp lies before now.
// Opaque tokens and tokens without exp never expire client-side; the
// backend remains the authority.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// Ready reports whether Restore has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return Session{}
	}
	u := *s.user
	return Session{User: &u, IsAuthenticated: true, Role: u.Role}
}

func (s *Store) IsStaff() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsStaff()
}

// AccessToken makes the store a client.TokenSource.
func (s *Store) AccessToken(context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Login exchanges credentials for a token. On success the token and user
// are persisted, then kept in memory, and a welcome is shown. On failure
// nothing is stored and the backend's message (or a generic one) is shown.
func (s *Store) Login(ctx context.Context, id, password string) bool {
	resp, err := s.auth.Login(ctx, strings.TrimSpace(id), password)
	if err != nil {
		s.logger.Warn(ctx, "login failed", "id", id, "error", err)
		s.notifier.Error(ctx, failureMessage(err, loginFailedMessage))
		return false
	}

	user := resp.User
	if err := s.repo.Save(ctx, models.SessionRecord{Token: resp.Token, User: &user}); err != nil {
		s.logger.Error(ctx, "persist session", "error", err)
		s.notifier.Error(ctx, loginFailedMessage)
		return false
	}

	s.mu.Lock()
	s.token, s.user = resp.Token, &user
	s.mu.Unlock()

	s.logger.Info(ctx, "signed in", "user", user.Username, "role", user.Role)
	s.notifier.Success(ctx, fmt.Sprintf("Welcome back, %s!", user.FullName))
	return true
}

// Register creates an account. It does not sign in; the returned login ID
// is what the user must log in with.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (string, bool) {
	if err := models.Validate(req); err != nil {
		s.notifier.Error(ctx, err.Error())
		return "", false
	}

	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "registration failed", "email", req.Email, "error", err)
		s.notifier.Error(ctx, failureMessage(err, registerFailedMessage))
		return "", false
	}

	s.notifier.Success(ctx, registeredMessage)
	return resp.UserID, true
}

// RecoverID looks up the login ID registered for email.
func (s *Store) RecoverID(ctx context.Context, email string) (*models.ForgotIDResponse, bool) {
	email = strings.TrimSpace(email)
	if err := models.Validate(models.ForgotIDRequest{Email: email}); err != nil {
		s.notifier.Error(ctx, err.Error())
		return nil, false
	}

	resp, err := s.auth.ForgotID(ctx, email)
	if err != nil {
		s.logger.Info(ctx, "id recovery failed", "error", err)
		s.notifier.Error(ctx, idNotFoundMessage)
		return nil, false
	}

	s.notifier.Success(ctx, idFoundMessage)
	return resp, true
}

// Logout clears persisted and in-memory state. A storage failure is
// logged; the in-memory session is dropped regardless.
func (s *Store) Logout(ctx context.Context) {
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error(ctx, "clear session on logout", "error", err)
	}

	s.mu.Lock()
	s.token, s.user = "", nil
	s.mu.Unlock()

	s.notifier.Success(ctx, loggedOutMessage)
}

func failureMessage(err error, fallback string) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return fallback
}
