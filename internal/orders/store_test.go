package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/otomarket/storefront-client/internal/cart"
	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/types"
)

type stubOrdersAPI struct {
	createResult *types.Order
	createErr    error
	myOrders     []types.Order
	allOrders    []types.Order
	order        *types.Order
	orderErr     error
	updateResult *types.Order
	updateErr    error
	updateCalls  int
}

func (s *stubOrdersAPI) CreateOrder(_ context.Context, _ types.OrderDraft) (*types.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createResult, nil
}

func (s *stubOrdersAPI) MyOrders(_ context.Context) ([]types.Order, error) {
	return s.myOrders, nil
}

func (s *stubOrdersAPI) AdminOrders(_ context.Context) ([]types.Order, error) {
	return s.allOrders, nil
}

func (s *stubOrdersAPI) Order(_ context.Context, _ int) (*types.Order, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return s.order, nil
}

func (s *stubOrdersAPI) UpdateOrderStatus(_ context.Context, _ int, _ types.OrderStatus) (*types.Order, error) {
	s.updateCalls++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updateResult, nil
}

func seededCart(t *testing.T) *cart.Store {
	t.Helper()
	c := cart.NewStore()
	if _, err := c.Add(types.Product{ID: 1, Price: decimal.NewFromInt(100), StockQuantity: 5}, 2); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}
	return c
}

func draftFromCart(c *cart.Store) types.OrderDraft {
	return types.OrderDraft{
		ShippingAddress: "1 Sanayi Cd, Ankara",
		PaymentMethod:   "cash",
		OrderItems:      c.OrderItems(),
	}
}

func TestCreateClearsCartOnce(t *testing.T) {
	t.Parallel()

	c := seededCart(t)
	api := &stubOrdersAPI{createResult: &types.Order{ID: 1, OrderNumber: "ORD-1001", Status: types.OrderStatusPending}}
	s, err := NewStore(api, c, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	order, err := s.Create(context.Background(), draftFromCart(c))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.OrderNumber != "ORD-1001" {
		t.Fatalf("unexpected order: %+v", order)
	}

	if len(c.Items()) != 0 {
		t.Fatal("cart must be empty after successful checkout")
	}
	if !c.TotalAmount().Equal(decimal.Zero) {
		t.Fatalf("cart total not reset: %s", c.TotalAmount())
	}
	if got := s.State().CurrentOrder; got == nil || got.ID != 1 {
		t.Fatalf("current order not set: %+v", got)
	}
}

func TestCreateFailureKeepsCart(t *testing.T) {
	t.Parallel()

	c := seededCart(t)
	api := &stubOrdersAPI{createErr: pkgerrors.New(pkgerrors.CodeValidation, "Insufficient stock")}
	s, _ := NewStore(api, c, nil)

	if _, err := s.Create(context.Background(), draftFromCart(c)); err == nil {
		t.Fatal("expected error")
	}

	if len(c.Items()) != 1 {
		t.Fatal("cart must survive a failed checkout")
	}
	state := s.State()
	if state.CurrentOrder != nil {
		t.Fatal("no order must be stored on failure")
	}
	if state.Err != "Insufficient stock" {
		t.Fatalf("backend message not surfaced: %q", state.Err)
	}
}

func TestCreateValidatesDraft(t *testing.T) {
	t.Parallel()

	c := cart.NewStore() // empty
	api := &stubOrdersAPI{}
	s, _ := NewStore(api, c, nil)

	// Empty cart means no order items, which fails boundary validation.
	if _, err := s.Create(context.Background(), draftFromCart(c)); err == nil {
		t.Fatal("expected validation error for empty cart")
	}
}

func TestFetchListsAreScoped(t *testing.T) {
	t.Parallel()

	api := &stubOrdersAPI{
		myOrders:  []types.Order{{ID: 1}},
		allOrders: []types.Order{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	s, _ := NewStore(api, cart.NewStore(), nil)
	ctx := context.Background()

	if err := s.FetchMine(ctx); err != nil {
		t.Fatalf("fetch mine: %v", err)
	}
	if err := s.FetchAll(ctx); err != nil {
		t.Fatalf("fetch all: %v", err)
	}

	state := s.State()
	if len(state.UserOrders) != 1 || len(state.Orders) != 3 {
		t.Fatalf("lists mixed up: mine=%d all=%d", len(state.UserOrders), len(state.Orders))
	}
}

func TestUpdateStatusPatchesRow(t *testing.T) {
	t.Parallel()

	updated := types.Order{ID: 2, Status: types.OrderStatusShipped}
	api := &stubOrdersAPI{
		allOrders:    []types.Order{{ID: 1, Status: types.OrderStatusPending}, {ID: 2, Status: types.OrderStatusProcessing}},
		updateResult: &updated,
	}
	s, _ := NewStore(api, cart.NewStore(), nil)
	ctx := context.Background()
	s.FetchAll(ctx)

	if err := s.UpdateStatus(ctx, 2, types.OrderStatusShipped); err != nil {
		t.Fatalf("update status: %v", err)
	}

	state := s.State()
	if !state.UpdateSuccess {
		t.Fatal("update success flag not set")
	}
	if state.Orders[1].Status != types.OrderStatusShipped {
		t.Fatalf("row not patched: %+v", state.Orders[1])
	}
	if state.Orders[0].Status != types.OrderStatusPending {
		t.Fatal("unrelated row touched")
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	api := &stubOrdersAPI{}
	s, _ := NewStore(api, cart.NewStore(), nil)

	if err := s.UpdateStatus(context.Background(), 1, types.OrderStatus("Lost")); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if api.updateCalls != 0 {
		t.Fatal("unknown status must not reach the backend")
	}
}

func TestUpdateStatusFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	api := &stubOrdersAPI{
		allOrders: []types.Order{{ID: 1, Status: types.OrderStatusPending}},
		updateErr: pkgerrors.New(pkgerrors.CodeConflict, "Order already delivered"),
	}
	s, _ := NewStore(api, cart.NewStore(), nil)
	ctx := context.Background()
	s.FetchAll(ctx)

	if err := s.UpdateStatus(ctx, 1, types.OrderStatusCancelled); err == nil {
		t.Fatal("expected error")
	}

	state := s.State()
	if state.Orders[0].Status != types.OrderStatusPending {
		t.Fatalf("state changed on failure: %+v", state.Orders[0])
	}
	if state.UpdateSuccess {
		t.Fatal("success flag set on failure")
	}
	if state.Err != "Order already delivered" {
		t.Fatalf("backend message not surfaced: %q", state.Err)
	}
}

func TestClearCurrent(t *testing.T) {
	t.Parallel()

	api := &stubOrdersAPI{order: &types.Order{ID: 5}}
	s, _ := NewStore(api, cart.NewStore(), nil)
	ctx := context.Background()

	s.FetchByID(ctx, 5)
	if s.State().CurrentOrder == nil {
		t.Fatal("current order not set")
	}
	s.ClearCurrent()
	if s.State().CurrentOrder != nil {
		t.Fatal("current order not cleared")
	}
}
