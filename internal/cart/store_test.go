package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/otomarket/storefront-client/pkg/types"
)

func product(id int, price int64, stock int) types.Product {
	return types.Product{
		ID:            id,
		Name:          "part",
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
	}
}

// checkInvariants asserts the cart properties that must hold after
// every mutation: quantities within [1, stock] and totals matching the
// line items.
func checkInvariants(t *testing.T, s *Store) {
	t.Helper()
	wantQty := 0
	wantTotal := decimal.Zero
	for _, item := range s.Items() {
		if item.Quantity < 1 || item.Quantity > item.StockQuantity {
			t.Fatalf("quantity %d outside [1, %d]", item.Quantity, item.StockQuantity)
		}
		wantQty += item.Quantity
		wantTotal = wantTotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if got := s.TotalQuantity(); got != wantQty {
		t.Fatalf("total quantity %d, want %d", got, wantQty)
	}
	if got := s.TotalAmount(); !got.Equal(wantTotal) {
		t.Fatalf("total amount %s, want %s", got, wantTotal)
	}
}

func TestAddMergesExistingLine(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, 100, 10), 2)
	s.Add(product(1, 100, 10), 3)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	checkInvariants(t, s)
}

func TestAddClampsToStock(t *testing.T) {
	t.Parallel()

	s := NewStore()
	clamped, err := s.Add(product(1, 100, 3), 7)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !clamped {
		t.Fatal("expected clamp notice")
	}
	if got := s.Items()[0].Quantity; got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	checkInvariants(t, s)
}

func TestAddOutOfStock(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if _, err := s.Add(product(1, 100, 0), 1); err == nil {
		t.Fatal("expected error for out-of-stock product")
	}
	if len(s.Items()) != 0 {
		t.Fatal("out-of-stock product must not be added")
	}
}

func TestUpdateQuantityClampScenario(t *testing.T) {
	t.Parallel()

	// Product {id:1, price:100, stock:3}, add qty 1, then request 5:
	// quantity clamps to 3 and the total lands on 300.
	s := NewStore()
	s.Add(product(1, 100, 3), 1)

	clamped, err := s.UpdateQuantity(1, 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !clamped {
		t.Fatal("expected clamp notice")
	}
	if got := s.Items()[0].Quantity; got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if !s.TotalAmount().Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected total 300, got %s", s.TotalAmount())
	}
	checkInvariants(t, s)
}

func TestUpdateQuantityClampsLowEnd(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, 100, 3), 2)

	clamped, err := s.UpdateQuantity(1, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if clamped {
		t.Fatal("low-end correction is not a stock clamp")
	}
	if got := s.Items()[0].Quantity; got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	checkInvariants(t, s)
}

func TestUpdateQuantityUnknownProduct(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if _, err := s.UpdateQuantity(99, 1); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestRemoveAndTotals(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, 100, 5), 2)
	s.Add(product(2, 50, 5), 1)
	checkInvariants(t, s)

	s.Remove(1)
	if len(s.Items()) != 1 || s.Items()[0].ID != 2 {
		t.Fatalf("unexpected items: %+v", s.Items())
	}
	checkInvariants(t, s)

	s.Remove(99) // no-op
	checkInvariants(t, s)
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, 100, 5), 2)
	s.Clear()

	if len(s.Items()) != 0 {
		t.Fatal("expected empty cart")
	}
	if !s.TotalAmount().Equal(decimal.Zero) || s.TotalQuantity() != 0 {
		t.Fatalf("totals not reset: %s %d", s.TotalAmount(), s.TotalQuantity())
	}
}

func TestOrderItems(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, 100, 5), 2)
	s.Add(product(2, 50, 5), 1)

	items := s.OrderItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(items))
	}
	if items[0].ProductID != 1 || items[0].Quantity != 2 || !items[0].Price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected order item: %+v", items[0])
	}
}
