// Package users mirrors the account collection for the admin console
// and handles the self-service profile edit. A profile edit also flows
// into the session store so the signed-in identity stays current.
package users

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/types"
	"github.com/otomarket/storefront-client/pkg/validate"
)

type usersAPI interface {
	Users(ctx context.Context) ([]types.User, error)
	User(ctx context.Context, id int) (*types.User, error)
	CreateUser(ctx context.Context, form types.UserForm) (*types.User, error)
	UpdateUser(ctx context.Context, id int, form types.UserForm) (*types.User, error)
	DeleteUser(ctx context.Context, id int) error
	SetUserStatus(ctx context.Context, id int, active bool) (*types.User, error)
	UpdateProfile(ctx context.Context, form types.ProfileForm) (*types.User, error)
}

// SessionUpdater is the slice of the session store a profile edit
// needs: merging the backend's view of the user into the session.
type SessionUpdater interface {
	UpdateUser(ctx context.Context, partial types.User)
}

// State is a snapshot of the user store.
type State struct {
	Users     []types.User
	Selected  *types.User
	IsLoading bool
	Err       string
}

type Store struct {
	api     usersAPI
	session SessionUpdater
	logg    *logger.Logger

	mu       sync.Mutex
	users    []types.User
	selected *types.User
	loading  bool
	lastErr  string
}

// NewStore wires the user store. session may be nil when no session
// store exists, in which case profile edits update only this store.
func NewStore(api usersAPI, session SessionUpdater, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("users api is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{api: api, session: session, logg: logg}, nil
}

// Fetch replaces the list with the backend's current view. Admin only.
func (s *Store) Fetch(ctx context.Context) error {
	s.begin()
	list, err := s.api.Users(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.users = list
	s.mu.Unlock()
	return nil
}

func (s *Store) FetchByID(ctx context.Context, id int) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.selected = nil
	s.mu.Unlock()

	user, err := s.api.User(ctx, id)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.selected = user
	s.mu.Unlock()
	return nil
}

func (s *Store) Create(ctx context.Context, form types.UserForm) error {
	if err := validate.Struct(form); err != nil {
		s.fail(err)
		return err
	}

	s.begin()
	created, err := s.api.CreateUser(ctx, form)
	if err != nil {
		s.fail(err)
		return err
	}

	s.logg.Info(s.logg.WithField(ctx, "user_id", created.ID), "user created")

	s.mu.Lock()
	s.loading = false
	s.users = append(s.users, *created)
	s.mu.Unlock()
	return nil
}

func (s *Store) Update(ctx context.Context, id int, form types.UserForm) error {
	if err := validate.Struct(form); err != nil {
		s.fail(err)
		return err
	}

	s.begin()
	updated, err := s.api.UpdateUser(ctx, id, form)
	if err != nil {
		s.fail(err)
		return err
	}
	s.patch(updated)
	return nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.begin()
	if err := s.api.DeleteUser(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
	return nil
}

// SetStatus toggles an account active or inactive and patches the row
// with whatever the backend returned.
func (s *Store) SetStatus(ctx context.Context, id int, active bool) error {
	s.begin()
	updated, err := s.api.SetUserStatus(ctx, id, active)
	if err != nil {
		s.fail(err)
		return err
	}
	s.patch(updated)
	return nil
}

// UpdateProfile edits the signed-in user's own record and merges the
// result into the session store.
func (s *Store) UpdateProfile(ctx context.Context, form types.ProfileForm) error {
	if err := validate.Struct(form); err != nil {
		s.fail(err)
		return err
	}

	s.begin()
	updated, err := s.api.UpdateProfile(ctx, form)
	if err != nil {
		s.fail(err)
		return err
	}
	s.patch(updated)
	if s.session != nil {
		s.session.UpdateUser(ctx, *updated)
	}
	return nil
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]types.User, len(s.users))
	copy(list, s.users)

	var selected *types.User
	if s.selected != nil {
		copied := *s.selected
		selected = &copied
	}
	return State{
		Users:     list,
		Selected:  selected,
		IsLoading: s.loading,
		Err:       s.lastErr,
	}
}

// patch settles a successful mutation: the matching row and, when it
// is the same account, the selection take the backend's state.
func (s *Store) patch(updated *types.User) {
	s.mu.Lock()
	s.loading = false
	for i := range s.users {
		if s.users[i].ID == updated.ID {
			s.users[i] = *updated
			break
		}
	}
	if s.selected != nil && s.selected.ID == updated.ID {
		s.selected = updated
	}
	s.mu.Unlock()
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = pkgerrors.PublicMessage(err)
	s.mu.Unlock()
}
