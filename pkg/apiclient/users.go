package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/otomarket/storefront-client/pkg/types"
)

func (c *Client) Users(ctx context.Context) ([]types.User, error) {
	var result []types.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) User(ctx context.Context, id int) (*types.User, error) {
	var result types.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateUser(ctx context.Context, form types.UserForm) (*types.User, error) {
	var result types.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateUser sends the admin edit form. An empty password means "keep
// the current one" and is omitted from the payload.
func (c *Client) UpdateUser(ctx context.Context, id int, form types.UserForm) (*types.User, error) {
	var result types.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

// SetUserStatus toggles an account active or inactive.
func (c *Client) SetUserStatus(ctx context.Context, id int, active bool) (*types.User, error) {
	payload := struct {
		IsActive bool `json:"isActive"`
	}{IsActive: active}

	var result types.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/status", id), nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProfile edits the authenticated user's own profile.
func (c *Client) UpdateProfile(ctx context.Context, form types.ProfileForm) (*types.User, error) {
	var result types.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
