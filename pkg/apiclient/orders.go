package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/otomarket/storefront-client/pkg/types"
)

// CreateOrder submits the checkout draft and returns the created order.
func (c *Client) CreateOrder(ctx context.Context, draft types.OrderDraft) (*types.Order, error) {
	var result types.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, draft, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyOrders lists the authenticated customer's orders.
func (c *Client) MyOrders(ctx context.Context) ([]types.Order, error) {
	var result []types.Order
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// AdminOrders lists every order. Admin only.
func (c *Client) AdminOrders(ctx context.Context) ([]types.Order, error) {
	var result []types.Order
	if err := c.do(ctx, http.MethodGet, "/orders/admin", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Order(ctx context.Context, id int) (*types.Order, error) {
	var result types.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateOrderStatus asks the backend to transition an order and
// returns whatever state the backend settled on. The client never
// computes transitions locally.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status types.OrderStatus) (*types.Order, error) {
	payload := struct {
		Status types.OrderStatus `json:"status"`
	}{Status: status}

	var result types.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
