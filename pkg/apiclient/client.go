// Package apiclient wraps the storefront REST backend in a typed Go
// surface. It attaches bearer tokens, correlates requests, and maps
// failure responses onto the shared error codes. It never retries; the
// stores surface failures and the user re-triggers the action.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/otomarket/storefront-client/pkg/config"
	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/types"
)

// TokenSource supplies the bearer token for authenticated calls. An
// empty token means the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value TokenSource, mostly for tests.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client is the typed HTTP client for the storefront backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logg       *logger.Logger
}

// New builds a client from configuration. tokens may be nil for a
// purely anonymous client.
func New(cfg config.APIConfig, tokens TokenSource, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     tokens,
		logg:       logg,
	}, nil
}

// SetTokenSource swaps the token provider. The session store installs
// itself here once constructed.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues a JSON request and decodes the response into out when out
// is non-nil. Backend failures come back as typed errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	ctx := c.logg.WithFields(req.Context(), map[string]any{
		"method": req.Method,
		"path":   req.URL.Path,
	})
	c.logg.Debug(ctx, "api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "network error")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding response body")
	}
	return nil
}

// decodeError turns a failure response into a typed error, preferring
// the backend's message and carrying field-level validation maps
// through untouched.
func decodeError(resp *http.Response) error {
	code := pkgerrors.CodeForStatus(resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return pkgerrors.New(code, pkgerrors.MetadataFor(code).PublicMessage)
	}

	var envelope types.ErrorEnvelope
	if jsonErr := json.Unmarshal(raw, &envelope); jsonErr != nil {
		return pkgerrors.New(code, pkgerrors.MetadataFor(code).PublicMessage)
	}

	message := envelope.Message
	if message == "" {
		message = pkgerrors.MetadataFor(code).PublicMessage
	}
	typed := pkgerrors.New(code, message)
	if len(envelope.Errors) > 0 {
		typed = typed.WithDetails(envelope.Errors)
	}
	return typed
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))
	return q
}
