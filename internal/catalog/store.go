// Package catalog mirrors the product collection: one page of results
// at a time, plus the single selected product for detail views. At
// most one listing mode (plain, search, filter) is active; switching
// modes forgets the other modes' criteria so pagination re-issues the
// right kind of request.
package catalog

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/types"
	"github.com/otomarket/storefront-client/pkg/validate"
)

type catalogAPI interface {
	Products(ctx context.Context, page, pageSize int) (*types.ProductPage, error)
	SearchProducts(ctx context.Context, query string, page, pageSize int) (*types.ProductPage, error)
	FilterProducts(ctx context.Context, filter types.ProductFilter, page, pageSize int) (*types.ProductPage, error)
	Product(ctx context.Context, id int) (*types.Product, error)
	CreateProduct(ctx context.Context, form types.ProductForm) (*types.Product, error)
	UpdateProduct(ctx context.Context, id int, form types.ProductForm) (*types.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type mode int

const (
	modeAll mode = iota
	modeSearch
	modeFilter
)

// State is a snapshot of the catalog store.
type State struct {
	Products           []types.Product
	Pagination         types.Pagination
	CurrentSearchQuery string
	CurrentFilters     types.ProductFilter
	Selected           *types.Product
	IsLoading          bool
	Err                string

	AdminActionLoading bool
	AdminActionSuccess bool
	AdminActionErr     string
}

// Store is the catalog state container.
type Store struct {
	api  catalogAPI
	logg *logger.Logger

	mu          sync.Mutex
	products    []types.Product
	pagination  types.Pagination
	mode        mode
	searchQuery string
	filters     types.ProductFilter
	selected    *types.Product
	loading     bool
	lastErr     string

	adminLoading bool
	adminSuccess bool
	adminErr     string

	// listSeq tags every list request so a slow response issued before
	// a newer one cannot overwrite the newer one's result.
	listSeq uint64
}

func NewStore(api catalogAPI, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("catalog api is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		api:        api,
		logg:       logg,
		pagination: types.Pagination{CurrentPage: 1, TotalPages: 1, PageSize: 6},
	}, nil
}

// Fetch loads one unfiltered catalog page, clearing any remembered
// search or filter criteria.
func (s *Store) Fetch(ctx context.Context, page, pageSize int) error {
	seq := s.beginList()
	result, err := s.api.Products(ctx, page, pageSize)
	return s.finishList(seq, modeAll, "", types.ProductFilter{}, result, err)
}

// Search loads one page of matches for query. Search supersedes any
// active filter.
func (s *Store) Search(ctx context.Context, query string, page, pageSize int) error {
	seq := s.beginList()
	result, err := s.api.SearchProducts(ctx, query, page, pageSize)
	return s.finishList(seq, modeSearch, query, types.ProductFilter{}, result, err)
}

// Filter loads one page constrained by criteria, superseding any
// active search.
func (s *Store) Filter(ctx context.Context, filter types.ProductFilter, page, pageSize int) error {
	seq := s.beginList()
	result, err := s.api.FilterProducts(ctx, filter, page, pageSize)
	return s.finishList(seq, modeFilter, "", filter, result, err)
}

func (s *Store) beginList() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listSeq++
	s.loading = true
	s.lastErr = ""
	return s.listSeq
}

// finishList applies a completed list response, discarding it when a
// newer list request has been issued since (last writer by logical
// order, not arrival order).
func (s *Store) finishList(seq uint64, m mode, query string, filter types.ProductFilter, result *types.ProductPage, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.listSeq {
		// A newer request owns the list now; drop this response but
		// still report the outcome to the caller.
		return err
	}

	s.loading = false
	if err != nil {
		s.lastErr = pkgerrors.PublicMessage(err)
		return err
	}

	s.products = result.Products
	s.pagination = result.Pagination
	s.mode = m
	s.searchQuery = query
	s.filters = filter
	return nil
}

// FetchByID loads the product for the detail view.
func (s *Store) FetchByID(ctx context.Context, id int) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.selected = nil
	s.mu.Unlock()

	product, err := s.api.Product(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = pkgerrors.PublicMessage(err)
		return err
	}
	s.selected = product
	return nil
}

// Create submits the admin create form. On success the pagination
// counts are patched optimistically and the new product is spliced
// into the visible slice when page 1 is showing.
func (s *Store) Create(ctx context.Context, form types.ProductForm) (*types.Product, error) {
	if err := validate.Struct(form); err != nil {
		s.setAdminError(err)
		return nil, err
	}

	s.beginAdmin()
	created, err := s.api.CreateProduct(ctx, form)
	if err != nil {
		s.setAdminError(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminLoading = false
	s.adminSuccess = true

	s.pagination.TotalItems++
	s.pagination.TotalPages = pageCount(s.pagination.TotalItems, s.pagination.PageSize)
	if s.pagination.CurrentPage == 1 {
		s.products = append([]types.Product{*created}, s.products...)
		if len(s.products) > s.pagination.PageSize {
			s.products = s.products[:s.pagination.PageSize]
		}
	}
	return created, nil
}

// Update submits the admin edit form and patches the row (and the
// selected product, when it is the one being viewed) in place.
func (s *Store) Update(ctx context.Context, id int, form types.ProductForm) (*types.Product, error) {
	if err := validate.Struct(form); err != nil {
		s.setAdminError(err)
		return nil, err
	}

	s.beginAdmin()
	updated, err := s.api.UpdateProduct(ctx, id, form)
	if err != nil {
		s.setAdminError(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminLoading = false
	s.adminSuccess = true

	for i, p := range s.products {
		if p.ID == updated.ID {
			s.products[i] = *updated
			break
		}
	}
	if s.selected != nil && s.selected.ID == updated.ID {
		copied := *updated
		s.selected = &copied
	}
	return updated, nil
}

// Delete removes a product and patches the local counts. When the
// deleted row was the last one on a page past the first, it re-fetches
// the previous page in whatever listing mode is active.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.beginAdmin()
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.setAdminError(err)
		return err
	}

	s.mu.Lock()
	s.adminLoading = false
	s.adminSuccess = true

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	s.pagination.TotalItems--
	if s.pagination.TotalItems < 0 {
		s.pagination.TotalItems = 0
	}
	s.pagination.TotalPages = pageCount(s.pagination.TotalItems, s.pagination.PageSize)
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}

	needRefetch := len(s.products) == 0 && s.pagination.CurrentPage > 1
	page := s.pagination.CurrentPage - 1
	pageSize := s.pagination.PageSize
	m := s.mode
	query := s.searchQuery
	filter := s.filters
	s.mu.Unlock()

	if !needRefetch {
		return nil
	}
	switch m {
	case modeSearch:
		return s.Search(ctx, query, page, pageSize)
	case modeFilter:
		return s.Filter(ctx, filter, page, pageSize)
	default:
		return s.Fetch(ctx, page, pageSize)
	}
}

func (s *Store) beginAdmin() {
	s.mu.Lock()
	s.adminLoading = true
	s.adminSuccess = false
	s.adminErr = ""
	s.mu.Unlock()
}

func (s *Store) setAdminError(err error) {
	s.mu.Lock()
	s.adminLoading = false
	s.adminErr = pkgerrors.PublicMessage(err)
	s.mu.Unlock()
}

// SetPage moves the pagination cursor without fetching; the caller
// re-issues the active-mode request afterwards.
func (s *Store) SetPage(page int) {
	s.mu.Lock()
	s.pagination.CurrentPage = page
	s.mu.Unlock()
}

func (s *Store) SetPageSize(size int) {
	s.mu.Lock()
	s.pagination.PageSize = size
	s.mu.Unlock()
}

func (s *Store) ClearAdminStatus() {
	s.mu.Lock()
	s.adminSuccess = false
	s.adminErr = ""
	s.mu.Unlock()
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

	products := make([]types.Product, len(s.products))
	copy(products, s.products)

	var selected *types.Product
	if s.selected != nil {
		copied := *s.selected
		selected = &copied
	}
	return State{
		Products:           products,
		Pagination:         s.pagination,
		CurrentSearchQuery: s.searchQuery,
		CurrentFilters:     s.filters,
		Selected:           selected,
		IsLoading:          s.loading,
		Err:                s.lastErr,
		AdminActionLoading: s.adminLoading,
		AdminActionSuccess: s.adminSuccess,
		AdminActionErr:     s.adminErr,
	}
}

// PriceLabel renders a product price for display. Prices are only
// shown to authenticated viewers; everyone else gets the login
// affordance instead of a number.
func PriceLabel(p types.Product, authenticated bool) string {
	if !authenticated {
		return "Log in to view price"
	}
	return p.Price.StringFixed(2)
}

func pageCount(totalItems, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
