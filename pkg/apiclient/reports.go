package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/otomarket/storefront-client/pkg/types"
)

func rangeQuery(rng types.DateRange) url.Values {
	q := url.Values{}
	q.Set("dateRange", string(rng))
	return q
}

func (c *Client) SalesReport(ctx context.Context, rng types.DateRange) (*types.SalesReport, error) {
	var result types.SalesReport
	if err := c.do(ctx, http.MethodGet, "/reports/sales", rangeQuery(rng), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) TopProducts(ctx context.Context, rng types.DateRange) ([]types.TopProduct, error) {
	var result []types.TopProduct
	if err := c.do(ctx, http.MethodGet, "/reports/top-products", rangeQuery(rng), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) TopCustomers(ctx context.Context, rng types.DateRange) ([]types.TopCustomer, error) {
	var result []types.TopCustomer
	if err := c.do(ctx, http.MethodGet, "/reports/top-customers", rangeQuery(rng), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) SalesByCategory(ctx context.Context, rng types.DateRange) ([]types.CategorySales, error) {
	var result []types.CategorySales
	if err := c.do(ctx, http.MethodGet, "/reports/sales-by-category", rangeQuery(rng), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) SalesTimeline(ctx context.Context, rng types.DateRange) ([]types.TimelinePoint, error) {
	var result []types.TimelinePoint
	if err := c.do(ctx, http.MethodGet, "/reports/sales-timeline", rangeQuery(rng), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	var result types.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RecentOrders(ctx context.Context) ([]types.Order, error) {
	var result []types.Order
	if err := c.do(ctx, http.MethodGet, "/dashboard/recent-orders", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) LowStockProducts(ctx context.Context) ([]types.Product, error) {
	var result []types.Product
	if err := c.do(ctx, http.MethodGet, "/dashboard/low-stock", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Settings(ctx context.Context) (*types.Settings, error) {
	var result types.Settings
	if err := c.do(ctx, http.MethodGet, "/settings", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveSettings replaces the whole settings object. A 400 response
// carries a field name to message map in the returned error.
func (c *Client) SaveSettings(ctx context.Context, settings types.Settings) (*types.Settings, error) {
	var result types.Settings
	if err := c.do(ctx, http.MethodPut, "/settings", nil, settings, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
