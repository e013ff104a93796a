package apiclient

import (
	"context"
	"net/http"

	"github.com/otomarket/storefront-client/pkg/types"
)

// Login exchanges credentials for a user and bearer token.
func (c *Client) Login(ctx context.Context, creds types.Credentials) (*types.LoginResult, error) {
	var result types.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account. It does not authenticate; callers go
// through Login afterwards.
func (c *Client) Register(ctx context.Context, reg types.Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, reg, nil)
}
