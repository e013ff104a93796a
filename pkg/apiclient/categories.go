package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/otomarket/storefront-client/pkg/types"
)

func (c *Client) Categories(ctx context.Context) ([]types.Category, error) {
	var result []types.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Category(ctx context.Context, id int) (*types.Category, error) {
	var result types.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateCategory(ctx context.Context, form types.CategoryForm) (*types.Category, error) {
	var result types.Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, form types.CategoryForm) (*types.Category, error) {
	var result types.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil, nil)
}
