// Package auth provides the mocked authentication flag. There is no real
// credential check: logging in with any non-empty email succeeds after a
// short delay, and the user is remembered across runs in a KV store.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nikbrunner/stash/internal/logger"
	"github.com/nikbrunner/stash/internal/storage"
)

// CurrentUserKey is the KV key the session is stored under.
const CurrentUserKey = "currentUser"

// DefaultDelay is the mock latency of Login and Register. Logout takes half.
const DefaultDelay = time.Second

// ErrEmptyEmail is returned by Login and Register for a blank email.
var ErrEmptyEmail = errors.New("email is required")

// User is the logged-in identity.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Params holds parameters for creating a Service.
type Params struct {
	KV     storage.KV     // optional, nil = nothing persisted
	Logger logger.Logger  // optional
	Delay  *time.Duration // optional, DefaultDelay if nil
}

// Service tracks the current user. It is safe for concurrent use: the
// mock delays run off the UI loop while the UI keeps reading the flag.
type Service struct {
	mu      sync.RWMutex
	user    *User
	loading bool

	kv    storage.KV
	log   logger.Logger
	delay time.Duration
}

// New creates a Service. It reports Loading until Restore has run.
func New(params Params) *Service {
	s := &Service{
		loading: true,
		kv:      params.KV,
		log:     params.Logger,
		delay:   DefaultDelay,
	}
	if params.Delay != nil {
		s.delay = *params.Delay
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Restore loads a persisted session. A corrupt entry or backing file is
// discarded and treated as logged out.
func (s *Service) Restore() error {
	defer s.setLoading(false)

	if s.kv == nil {
		return nil
	}

	raw, err := s.kv.Get(CurrentUserKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if errors.Is(err, storage.ErrCorrupt) {
		return s.discardSession(err)
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" || user.Email == "" {
		return s.discardSession(err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.log.Info("session restored", logger.String("email", user.Email))
	return nil
}

// Login signs in as email. The password is accepted but not checked.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	return s.signIn(ctx, email, "Mock User")
}

// Register creates an account for email and signs in.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	return s.signIn(ctx, email, "New User")
}

func (s *Service) signIn(ctx context.Context, email, displayName string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, ErrEmptyEmail
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := sleep(ctx, s.delay); err != nil {
		return User{}, err
	}

	user := User{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: displayName,
	}
	if err := s.persist(user); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.log.Info("logged in", logger.String("email", email), logger.String("display_name", displayName))
	return user, nil
}

// Logout clears the session.
func (s *Service) Logout(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := sleep(ctx, s.delay/2); err != nil {
		return err
	}

	if s.kv != nil {
		if err := s.kv.Delete(CurrentUserKey); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}

	s.mu.Lock()
	email := ""
	if s.user != nil {
		email = s.user.Email
	}
	s.user = nil
	s.mu.Unlock()

	s.log.Info("logged out", logger.String("email", email))
	return nil
}

// CurrentUser returns the signed-in user, or false when logged out.
func (s *Service) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Identity returns the signed-in email, "" when logged out.
func (s *Service) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Email
}

func (s *Service) discardSession(cause error) error {
	s.log.Warn("discarding corrupt session", logger.Error(cause))
	if err := s.kv.Delete(CurrentUserKey); err != nil {
		return fmt.Errorf("clear corrupt session: %w", err)
	}
	return nil
}

// Loading reports whether a restore, login or logout is in flight.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Service) persist(user User) error {
	if s.kv == nil {
		return nil
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.Set(CurrentUserKey, string(data)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
