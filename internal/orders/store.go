// Package orders tracks the order being created or viewed plus the
// customer- and admin-scoped order lists. Status transitions are
// always a backend round-trip; the store only reflects what came back.
package orders

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/types"
	"github.com/otomarket/storefront-client/pkg/validate"
)

type ordersAPI interface {
	CreateOrder(ctx context.Context, draft types.OrderDraft) (*types.Order, error)
	MyOrders(ctx context.Context) ([]types.Order, error)
	AdminOrders(ctx context.Context) ([]types.Order, error)
	Order(ctx context.Context, id int) (*types.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status types.OrderStatus) (*types.Order, error)
}

// CartClearer is the slice of the cart store the order store needs:
// emptying it once checkout succeeds.
type CartClearer interface {
	Clear()
}

// State is a snapshot of the order store.
type State struct {
	Orders        []types.Order
	UserOrders    []types.Order
	CurrentOrder  *types.Order
	IsLoading     bool
	Err           string
	UpdateSuccess bool
}

type Store struct {
	api  ordersAPI
	cart CartClearer
	logg *logger.Logger

	mu            sync.Mutex
	orders        []types.Order
	userOrders    []types.Order
	currentOrder  *types.Order
	loading       bool
	lastErr       string
	updateSuccess bool
}

func NewStore(api ordersAPI, cart CartClearer, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("orders api is required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart clearer is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{api: api, cart: cart, logg: logg}, nil
}

// Create submits the checkout draft. On success the cart is cleared,
// exactly once and only here, and the created order becomes current.
// On failure nothing changes, including the cart.
func (s *Store) Create(ctx context.Context, draft types.OrderDraft) (*types.Order, error) {
	if err := validate.Struct(draft); err != nil {
		s.fail(err)
		return nil, err
	}

	s.begin()
	order, err := s.api.CreateOrder(ctx, draft)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.cart.Clear()
	s.logg.Info(s.logg.WithField(ctx, "order_number", order.OrderNumber), "order created")

	s.mu.Lock()
	s.loading = false
	s.currentOrder = order
	s.mu.Unlock()
	return order, nil
}

// FetchMine loads the authenticated customer's orders.
func (s *Store) FetchMine(ctx context.Context) error {
	s.begin()
	result, err := s.api.MyOrders(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.userOrders = result
	s.mu.Unlock()
	return nil
}

// FetchAll loads every order. Admin only.
func (s *Store) FetchAll(ctx context.Context) error {
	s.begin()
	result, err := s.api.AdminOrders(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.orders = result
	s.mu.Unlock()
	return nil
}

// FetchByID loads one order as current.
func (s *Store) FetchByID(ctx context.Context, id int) error {
	s.begin()
	order, err := s.api.Order(ctx, id)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.currentOrder = order
	s.mu.Unlock()
	return nil
}

// UpdateStatus asks the backend to transition the order and patches
// the admin list row with whatever state came back.
func (s *Store) UpdateStatus(ctx context.Context, id int, status types.OrderStatus) error {
	if !status.Valid() {
		err := pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.updateSuccess = false
	s.mu.Unlock()

	updated, err := s.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.updateSuccess = true
	for i, o := range s.orders {
		if o.ID == updated.ID {
			s.orders[i] = *updated
			break
		}
	}
	if s.currentOrder != nil && s.currentOrder.ID == updated.ID {
		s.currentOrder = updated
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) ClearCurrent() {
	s.mu.Lock()
	s.currentOrder = nil
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

	orders := make([]types.Order, len(s.orders))
	copy(orders, s.orders)
	userOrders := make([]types.Order, len(s.userOrders))
	copy(userOrders, s.userOrders)

	var current *types.Order
	if s.currentOrder != nil {
		copied := *s.currentOrder
		current = &copied
	}
	return State{
		Orders:        orders,
		UserOrders:    userOrders,
		CurrentOrder:  current,
		IsLoading:     s.loading,
		Err:           s.lastErr,
		UpdateSuccess: s.updateSuccess,
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
