package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/types"
)

// Products fetches one page of the unfiltered catalog.
func (c *Client) Products(ctx context.Context, page, pageSize int) (*types.ProductPage, error) {
	var result types.ProductPage
	if err := c.do(ctx, http.MethodGet, "/products", pageQuery(page, pageSize), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchProducts fetches one page of full-text matches for query.
func (c *Client) SearchProducts(ctx context.Context, query string, page, pageSize int) (*types.ProductPage, error) {
	q := pageQuery(page, pageSize)
	q.Set("query", query)
	var result types.ProductPage
	if err := c.do(ctx, http.MethodGet, "/products/search", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FilterProducts fetches one page constrained by the filter criteria.
func (c *Client) FilterProducts(ctx context.Context, filter types.ProductFilter, page, pageSize int) (*types.ProductPage, error) {
	q := pageQuery(page, pageSize)
	if filter.CategoryID > 0 {
		q.Set("categoryId", strconv.Itoa(filter.CategoryID))
	}
	if filter.MinPrice != nil {
		q.Set("minPrice", filter.MinPrice.String())
	}
	if filter.MaxPrice != nil {
		q.Set("maxPrice", filter.MaxPrice.String())
	}
	if filter.InStock {
		q.Set("inStock", "true")
	}
	if filter.Featured {
		q.Set("featured", "true")
	}
	var result types.ProductPage
	if err := c.do(ctx, http.MethodGet, "/products/filter", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Product fetches a single product for the detail view.
func (c *Client) Product(ctx context.Context, id int) (*types.Product, error) {
	var result types.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateProduct submits the admin create form as multipart, with the
// optional image attached as a file part.
func (c *Client) CreateProduct(ctx context.Context, form types.ProductForm) (*types.Product, error) {
	return c.sendProductForm(ctx, http.MethodPost, "/products", form)
}

// UpdateProduct submits the admin update form as multipart.
func (c *Client) UpdateProduct(ctx context.Context, id int, form types.ProductForm) (*types.Product, error) {
	return c.sendProductForm(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), form)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

func (c *Client) sendProductForm(ctx context.Context, method, path string, form types.ProductForm) (*types.Product, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":          form.Name,
		"description":   form.Description,
		"price":         form.Price.String(),
		"categoryId":    strconv.Itoa(form.CategoryID),
		"stockQuantity": strconv.Itoa(form.StockQuantity),
		"sku":           form.SKU,
		"isActive":      strconv.FormatBool(form.IsActive),
		"isFeatured":    strconv.FormatBool(form.IsFeatured),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing form field")
		}
	}
	if len(form.Image) > 0 {
		imageName := form.ImageName
		if imageName == "" {
			imageName = "image"
		}
		part, err := writer.CreateFormFile("image", imageName)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating image part")
		}
		if _, err := part.Write(form.Image); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing image part")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalizing multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, url.Values{}), &buf)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result types.Product
	if err := c.send(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
