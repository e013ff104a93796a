// Package reports holds the five admin reporting datasets. They are
// fetched together for one date range; changing the range re-fetches
// everything, and a slow refresh for an old range never overwrites a
// newer one.
package reports

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/types"
)

type reportsAPI interface {
	SalesReport(ctx context.Context, rng types.DateRange) (*types.SalesReport, error)
	TopProducts(ctx context.Context, rng types.DateRange) ([]types.TopProduct, error)
	TopCustomers(ctx context.Context, rng types.DateRange) ([]types.TopCustomer, error)
	SalesByCategory(ctx context.Context, rng types.DateRange) ([]types.CategorySales, error)
	SalesTimeline(ctx context.Context, rng types.DateRange) ([]types.TimelinePoint, error)
}

// State is a snapshot of the report store.
type State struct {
	Range        types.DateRange
	Sales        *types.SalesReport
	TopProducts  []types.TopProduct
	TopCustomers []types.TopCustomer
	ByCategory   []types.CategorySales
	Timeline     []types.TimelinePoint
	IsLoading    bool
	Err          string
}

type Store struct {
	api  reportsAPI
	logg *logger.Logger

	mu           sync.Mutex
	rng          types.DateRange
	sales        *types.SalesReport
	topProducts  []types.TopProduct
	topCustomers []types.TopCustomer
	byCategory   []types.CategorySales
	timeline     []types.TimelinePoint
	loading      bool
	lastErr      string

	// seq tags every refresh so a slow one started for an old range
	// cannot overwrite a newer range's datasets.
	seq uint64
}

func NewStore(api reportsAPI, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("reports api is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{api: api, rng: types.RangeMonth, logg: logg}, nil
}

// Fetch refreshes all five datasets for the current range.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	rng := s.rng
	s.mu.Unlock()
	return s.refresh(ctx, rng)
}

// SetRange switches the reporting window and refreshes everything.
// An unknown range is rejected without touching the backend.
func (s *Store) SetRange(ctx context.Context, rng types.DateRange) error {
	if !rng.Valid() {
		err := pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown date range %q", rng))
		s.mu.Lock()
		s.lastErr = pkgerrors.PublicMessage(err)
		s.mu.Unlock()
		return err
	}
	return s.refresh(ctx, rng)
}

func (s *Store) refresh(ctx context.Context, rng types.DateRange) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.rng = rng
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	sales, err := s.api.SalesReport(ctx, rng)
	if err != nil {
		return s.fail(seq, err)
	}
	topProducts, err := s.api.TopProducts(ctx, rng)
	if err != nil {
		return s.fail(seq, err)
	}
	topCustomers, err := s.api.TopCustomers(ctx, rng)
	if err != nil {
		return s.fail(seq, err)
	}
	byCategory, err := s.api.SalesByCategory(ctx, rng)
	if err != nil {
		return s.fail(seq, err)
	}
	timeline, err := s.api.SalesTimeline(ctx, rng)
	if err != nil {
		return s.fail(seq, err)
	}

	s.mu.Lock()
	if seq == s.seq {
		s.sales = sales
		s.topProducts = topProducts
		s.topCustomers = topCustomers
		s.byCategory = byCategory
		s.timeline = timeline
		s.loading = false
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

	st := State{
		Range:        s.rng,
		TopProducts:  append([]types.TopProduct(nil), s.topProducts...),
		TopCustomers: append([]types.TopCustomer(nil), s.topCustomers...),
		ByCategory:   append([]types.CategorySales(nil), s.byCategory...),
		Timeline:     append([]types.TimelinePoint(nil), s.timeline...),
		IsLoading:    s.loading,
		Err:          s.lastErr,
	}
	if s.sales != nil {
		copied := *s.sales
		st.Sales = &copied
	}
	return st
}

// fail settles a refresh that lost to an error. A stale refresh's
// error is dropped the same way its data would have been.
func (s *Store) fail(seq uint64, err error) error {
	s.mu.Lock()
	if seq == s.seq {
		s.loading = false
		s.lastErr = pkgerrors.PublicMessage(err)
	}
	s.mu.Unlock()
	return err
}
