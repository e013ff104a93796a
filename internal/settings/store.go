// Package settings mirrors the single store-wide settings object.
// There is no patching: every fetch and save replaces it wholesale,
// and a rejected save keeps the last accepted object plus the
// backend's per-field messages.
package settings

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/types"
	"github.com/otomarket/storefront-client/pkg/validate"
)

type settingsAPI interface {
	Settings(ctx context.Context) (*types.Settings, error)
	SaveSettings(ctx context.Context, settings types.Settings) (*types.Settings, error)
}

// State is a snapshot of the settings store.
type State struct {
	Settings    types.Settings
	FieldErrors map[string]string
	IsLoading   bool
	SaveSuccess bool
	Err         string
}

type Store struct {
	api  settingsAPI
	logg *logger.Logger

	mu          sync.Mutex
	settings    types.Settings
	fieldErrors map[string]string
	loading     bool
	saveSuccess bool
	lastErr     string
}

func NewStore(api settingsAPI, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("settings api is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{api: api, logg: logg}, nil
}

// Fetch replaces the settings object with the backend's copy.
func (s *Store) Fetch(ctx context.Context) error {
	s.begin()
	current, err := s.api.Settings(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.settings = *current
	s.mu.Unlock()
	return nil
}

// Save submits the whole object. On success the store holds whatever
// the backend normalised and returned. On rejection the last accepted
// object stays, with the per-field messages alongside it.
func (s *Store) Save(ctx context.Context, settings types.Settings) error {
	if err := validate.Struct(settings); err != nil {
		s.fail(err)
		return err
	}

	s.begin()
	saved, err := s.api.SaveSettings(ctx, settings)
	if err != nil {
		s.fail(err)
		return err
	}

	s.logg.Info(ctx, "settings saved")

	s.mu.Lock()
	s.loading = false
	s.saveSuccess = true
	s.settings = *saved
	s.mu.Unlock()
	return nil
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.fieldErrors = nil
	s.mu.Unlock()
}

func (s *Store) ClearSaveStatus() {
	s.mu.Lock()
	s.saveSuccess = false
	s.mu.Unlock()
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fields map[string]string
	if len(s.fieldErrors) > 0 {
		fields = make(map[string]string, len(s.fieldErrors))
		for k, v := range s.fieldErrors {
			fields[k] = v
		}
	}
	return State{
		Settings:    s.settings,
		FieldErrors: fields,
		IsLoading:   s.loading,
		SaveSuccess: s.saveSuccess,
		Err:         s.lastErr,
	}
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.fieldErrors = nil
	s.saveSuccess = false
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.saveSuccess = false
	s.lastErr = pkgerrors.PublicMessage(err)
	if typed := pkgerrors.As(err); typed != nil {
		s.fieldErrors = typed.FieldErrors()
	}
	s.mu.Unlock()
}
