// Package catalog talks to the remote backend REST API that owns all
// product, pricing, inventory and category data. This service only reads.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/pkg/logger"
)

// ErrNotFound is returned when the backend reports 404 for a product.
var ErrNotFound = errors.New("catalog: not found")

// Client is the HTTP client for the remote catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client. baseURL is the API root, e.g.
// "https://api.example.com/api/v2".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListProducts fetches a product page. Filter fields map straight onto the
// backend's query parameters; zero values are omitted.
func (c *Client) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	params := url.Values{}
	if filter.CategoryID != "" {
		params.Set("category_id", filter.CategoryID)
	}
	if filter.Query != "" {
		params.Set("name", filter.Query)
	}
	if filter.Brand != "" {
		params.Set("brand", filter.Brand)
	}
	if filter.Sort != "" {
		params.Set("sort_by", filter.Sort)
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		params.Set("offset", strconv.Itoa(filter.Offset))
	}

	endpoint := c.baseURL + "/products"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, 0, err
	}

	var list productListDTO
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, 0, fmt.Errorf("failed to decode product list: %w", err)
	}

	products := make([]domain.Product, 0, len(list.Products))
	for _, raw := range list.Products {
		var dto productDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			// One malformed record must not take down the whole listing.
			logger.Warn().Err(err).Msg("Skipping malformed product record")
			continue
		}
		products = append(products, dto.toDomain())
	}

	total := int64(list.TotalSize)
	if total == 0 {
		total = int64(len(products))
	}
	return products, total, nil
}

// GetProduct fetches one product with its full variant inventory.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	body, err := c.get(ctx, c.baseURL+"/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}

	product := dto.toDomain()
	if product.ID == "" {
		product.ID = id
	}
	return &product, nil
}

// GetCategories fetches the category list.
func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	body, err := c.get(ctx, c.baseURL+"/categories")
	if err != nil {
		return nil, err
	}

	var list categoryListDTO
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode category list: %w", err)
	}

	categories := make([]domain.Category, 0, len(list.Categories))
	for _, dto := range list.Categories {
		categories = append(categories, dto.toDomain())
	}
	return categories, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("catalog returned %d: %s", resp.StatusCode, string(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}
	return body, nil
}
