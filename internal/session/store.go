// Package session holds the authenticated user and bearer token, and
// keeps both mirrored in durable storage so a restart does not force a
// re-login.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/storage"
	"github.com/otomarket/storefront-client/pkg/types"
	"github.com/otomarket/storefront-client/pkg/validate"
)

type authAPI interface {
	Login(ctx context.Context, creds types.Credentials) (*types.LoginResult, error)
	Register(ctx context.Context, reg types.Registration) error
}

// State is an immutable snapshot of the session. IsAuthenticated and
// IsAdmin are derived from User at snapshot time, so the "admin with
// no user" state cannot be observed.
type State struct {
	User            *types.User
	Token           string
	IsAuthenticated bool
	IsAdmin         bool
	IsLoading       bool
	Err             string
}

// Store is the session state container.
type Store struct {
	api  authAPI
	kv   storage.KV
	logg *logger.Logger

	mu      sync.RWMutex
	user    *types.User
	token   string
	loading bool
	lastErr string
}

type Params struct {
	API    authAPI
	KV     storage.KV
	Logger *logger.Logger
}

// NewStore builds the session store and hydrates it from durable
// storage. Hydration failures of any kind leave the store
// unauthenticated; they are never fatal.
func NewStore(ctx context.Context, p Params) (*Store, error) {
	if p.API == nil {
		return nil, fmt.Errorf("auth api is required")
	}
	if p.KV == nil {
		return nil, fmt.Errorf("durable storage is required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	s := &Store{api: p.API, kv: p.KV, logg: p.Logger}
	s.hydrate(ctx)
	return s, nil
}

func (s *Store) hydrate(ctx context.Context) {
	token, err := s.kv.Get(ctx, storage.KeySessionToken)
	if err != nil {
		return
	}
	rawUser, err := s.kv.Get(ctx, storage.KeySessionUser)
	if err != nil {
		s.logg.Warn(ctx, "stored session has token but no user, discarding")
		s.kv.Delete(ctx, storage.KeySessionToken)
		return
	}

	var user types.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logg.Warn(ctx, "stored session user is corrupt, discarding")
		s.kv.Delete(ctx, storage.KeySessionToken, storage.KeySessionUser)
		return
	}

	if tokenExpired(token) {
		s.logg.Info(ctx, "stored session token expired, discarding")
		s.kv.Delete(ctx, storage.KeySessionToken, storage.KeySessionUser)
		return
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
}

// tokenExpired reports whether token is a JWT whose exp claim has
// passed. Opaque (non-JWT) tokens are assumed live; the backend will
// reject them with a 401 if they are not.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login exchanges credentials for a session and persists it. On
// failure the store stays unauthenticated and the backend's message
// lands in the error slot.
func (s *Store) Login(ctx context.Context, creds types.Credentials) error {
	if err := validate.Struct(creds); err != nil {
		s.setError(err)
		return err
	}

	s.setLoading(true)
	result, err := s.api.Login(ctx, creds)
	if err != nil {
		s.setError(err)
		return err
	}

	payload, err := json.Marshal(result.User)
	if err != nil {
		err = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding session user")
		s.setError(err)
		return err
	}
	if err := s.kv.Set(ctx, storage.KeySessionToken, result.Token); err != nil {
		s.logg.Error(ctx, "persisting session token", err)
	}
	if err := s.kv.Set(ctx, storage.KeySessionUser, string(payload)); err != nil {
		s.logg.Error(ctx, "persisting session user", err)
	}

	user := result.User
	s.mu.Lock()
	s.user = &user
	s.token = result.Token
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Register creates an account without authenticating; the caller is
// expected to move on to Login.
func (s *Store) Register(ctx context.Context, reg types.Registration) error {
	if err := validate.Struct(reg); err != nil {
		s.setError(err)
		return err
	}

	s.setLoading(true)
	if err := s.api.Register(ctx, reg); err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Logout clears durable storage and resets to the unauthenticated
// initial state. Storage failures are logged, not surfaced; the
// in-memory session is gone either way.
func (s *Store) Logout(ctx context.Context) {
	if err := s.kv.Delete(ctx, storage.KeySessionToken, storage.KeySessionUser); err != nil {
		s.logg.Error(ctx, "clearing persisted session", err)
	}
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
}

// UpdateUser merges a partial user into the current session user and
// re-persists it. Used after profile edits made elsewhere. A no-op
// when nobody is logged in.
func (s *Store) UpdateUser(ctx context.Context, partial types.User) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	merged := *s.user
	if partial.FirstName != "" {
		merged.FirstName = partial.FirstName
	}
	if partial.LastName != "" {
		merged.LastName = partial.LastName
	}
	if partial.Email != "" {
		merged.Email = partial.Email
	}
	if partial.Phone != "" {
		merged.Phone = partial.Phone
	}
	s.user = &merged
	s.mu.Unlock()

	payload, err := json.Marshal(merged)
	if err != nil {
		s.logg.Error(ctx, "encoding merged session user", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeySessionUser, string(payload)); err != nil {
		s.logg.Error(ctx, "re-persisting session user", err)
	}
}

// Token implements apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var user *types.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return State{
		User:            user,
		Token:           s.token,
		IsAuthenticated: user != nil,
		IsAdmin:         user != nil && user.IsAdmin,
		IsLoading:       s.loading,
		Err:             s.lastErr,
	}
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	if v {
		s.lastErr = ""
	}
	s.mu.Unlock()
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = pkgerrors.PublicMessage(err)
	s.mu.Unlock()
}
