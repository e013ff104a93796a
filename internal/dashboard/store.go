// Package dashboard holds the admin landing-page data: headline
// stats, the most recent orders, and products running low on stock.
// Stats are zero-valued until the first fetch so the view can render
// immediately.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/types"
)

type dashboardAPI interface {
	DashboardStats(ctx context.Context) (*types.DashboardStats, error)
	RecentOrders(ctx context.Context) ([]types.Order, error)
	LowStockProducts(ctx context.Context) ([]types.Product, error)
}

// State is a snapshot of the dashboard store.
type State struct {
	Stats        types.DashboardStats
	RecentOrders []types.Order
	LowStock     []types.Product
	IsLoading    bool
	Err          string
}

type Store struct {
	api  dashboardAPI
	logg *logger.Logger

	mu           sync.Mutex
	stats        types.DashboardStats
	recentOrders []types.Order
	lowStock     []types.Product
	loading      bool
	lastErr      string
}

func NewStore(api dashboardAPI, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("dashboard api is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{api: api, logg: logg}, nil
}

// Fetch refreshes all three panels together.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	stats, err := s.api.DashboardStats(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	recent, err := s.api.RecentOrders(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	lowStock, err := s.api.LowStockProducts(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.stats = *stats
	s.recentOrders = recent
	s.lowStock = lowStock
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

	return State{
		Stats:        s.stats,
		RecentOrders: append([]types.Order(nil), s.recentOrders...),
		LowStock:     append([]types.Product(nil), s.lowStock...),
		IsLoading:    s.loading,
		Err:          s.lastErr,
	}
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = pkgerrors.PublicMessage(err)
	s.mu.Unlock()
}
