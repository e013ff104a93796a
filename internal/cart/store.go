// Package cart is the one wholly client-owned store: line items never
// touch the backend until checkout turns them into an order draft.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/types"
)

// Item is one cart line. StockQuantity is a snapshot taken when the
// product was added; quantity is always clamped to [1, stock].
type Item struct {
	ID            int
	Name          string
	Price         decimal.Decimal
	ImageURL      string
	Quantity      int
	StockQuantity int
}

// Store holds cart lines and keeps the derived totals current on every
// mutation.
type Store struct {
	mu          sync.RWMutex
	items       []Item
	totalQty    int
	totalAmount decimal.Decimal
}

func NewStore() *Store {
	return &Store{totalAmount: decimal.Zero}
}

// Add puts qty units of product into the cart, merging into an
// existing line when the product is already present. The returned flag
// reports whether the requested quantity was clamped down to stock.
func (s *Store) Add(product types.Product, qty int) (clamped bool, err error) {
	if product.StockQuantity < 1 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product is out of stock")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == product.ID {
			requested := item.Quantity + qty
			item.Quantity, clamped = clampQuantity(requested, item.StockQuantity)
			s.items[i] = item
			s.recompute()
			return clamped, nil
		}
	}

	quantity, clamped := clampQuantity(qty, product.StockQuantity)
	s.items = append(s.items, Item{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		ImageURL:      product.ImageURL,
		Quantity:      quantity,
		StockQuantity: product.StockQuantity,
	})
	s.recompute()
	return clamped, nil
}

// UpdateQuantity sets the line quantity, clamped to [1, stock]. Values
// outside the range are corrected, never rejected.
func (s *Store) UpdateQuantity(id, qty int) (clamped bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			item.Quantity, clamped = clampQuantity(qty, item.StockQuantity)
			s.items[i] = item
			s.recompute()
			return clamped, nil
		}
	}
	return false, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
}

// Remove drops a line. Removing an absent id is a no-op.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.recompute()
			return
		}
	}
}

// Clear empties the cart. Called exactly once per successful checkout,
// by the order store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.recompute()
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) TotalQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalQty
}

func (s *Store) TotalAmount() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalAmount
}

// OrderItems renders the cart as a checkout payload.
func (s *Store) OrderItems() []types.OrderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.OrderItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, types.OrderItem{
			ProductID: item.ID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return out
}

// recompute refreshes the derived totals. Callers hold the lock.
func (s *Store) recompute() {
	total := decimal.Zero
	qty := 0
	for _, item := range s.items {
		qty += item.Quantity
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	s.totalQty = qty
	s.totalAmount = total
}

func clampQuantity(requested, stock int) (quantity int, clamped bool) {
	if requested < 1 {
		return 1, false
	}
	if requested > stock {
		return stock, true
	}
	return requested, false
}
