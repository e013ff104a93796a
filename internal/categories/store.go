// Package categories mirrors the category collection for the admin
// console. The backend owns the data; the store holds the last known
// list and keeps it coherent across create, update and delete.
package categories

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/types"
	"github.com/otomarket/storefront-client/pkg/validate"
)

type categoriesAPI interface {
	Categories(ctx context.Context) ([]types.Category, error)
	Category(ctx context.Context, id int) (*types.Category, error)
	CreateCategory(ctx context.Context, form types.CategoryForm) (*types.Category, error)
	UpdateCategory(ctx context.Context, id int, form types.CategoryForm) (*types.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

// State is a snapshot of the category store.
type State struct {
	Categories []types.Category
	Selected   *types.Category
	IsLoading  bool
	Err        string
}

type Store struct {
	api  categoriesAPI
	logg *logger.Logger

	mu         sync.Mutex
	categories []types.Category
	selected   *types.Category
	loading    bool
	lastErr    string
}

func NewStore(api categoriesAPI, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("categories api is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{api: api, logg: logg}, nil
}

// Fetch replaces the list with the backend's current view.
func (s *Store) Fetch(ctx context.Context) error {
	s.begin()
	list, err := s.api.Categories(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.categories = list
	s.mu.Unlock()
	return nil
}

// FetchByID loads one category as selected. The previous selection is
// cleared while the request is in flight so a detail form never shows
// stale data.
func (s *Store) FetchByID(ctx context.Context, id int) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.selected = nil
	s.mu.Unlock()

	cat, err := s.api.Category(ctx, id)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.selected = cat
	s.mu.Unlock()
	return nil
}

func (s *Store) Create(ctx context.Context, form types.CategoryForm) error {
	if err := validate.Struct(form); err != nil {
		s.fail(err)
		return err
	}

	s.begin()
	created, err := s.api.CreateCategory(ctx, form)
	if err != nil {
		s.fail(err)
		return err
	}

	s.logg.Info(s.logg.WithField(ctx, "category_id", created.ID), "category created")

	s.mu.Lock()
	s.loading = false
	s.categories = append(s.categories, *created)
	s.mu.Unlock()
	return nil
}

func (s *Store) Update(ctx context.Context, id int, form types.CategoryForm) error {
	if err := validate.Struct(form); err != nil {
		s.fail(err)
		return err
	}

	s.begin()
	updated, err := s.api.UpdateCategory(ctx, id, form)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	for i := range s.categories {
		if s.categories[i].ID == updated.ID {
			s.categories[i] = *updated
			break
		}
	}
	if s.selected != nil && s.selected.ID == updated.ID {
		s.selected = updated
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.begin()
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
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

	list := make([]types.Category, len(s.categories))
	copy(list, s.categories)

	var selected *types.Category
	if s.selected != nil {
		copied := *s.selected
		selected = &copied
	}
	return State{
		Categories: list,
		Selected:   selected,
		IsLoading:  s.loading,
		Err:        s.lastErr,
	}
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
