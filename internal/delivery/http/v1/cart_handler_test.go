package v1

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobimart-storefront/config"
	"mobimart-storefront/internal/delivery/http/middleware"
	"mobimart-storefront/internal/domain"
	memcache "mobimart-storefront/internal/infrastructure/cache"
	"mobimart-storefront/internal/infrastructure/catalog"
	kvmem "mobimart-storefront/internal/infrastructure/kv"
	"mobimart-storefront/internal/store"
	"mobimart-storefront/internal/usecase"
)

type stubCatalog struct {
	products map[string]domain.Product
}

func (s *stubCatalog) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (s *stubCatalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

func (s *stubCatalog) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "c1", Name: "Phones", Slug: "phones"}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		CacheProductTTL:     time.Minute,
		CacheCategoryTTL:    time.Minute,
		SessionCookieName:   "mm_session",
		SessionCookieMaxAge: time.Hour,
		MaxCartQuantity:     100,
	}
}

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := testConfig()
	stub := &stubCatalog{products: map[string]domain.Product{
		"p1": {
			ID:          "p1",
			Name:        "Phone One",
			Slug:        "phone-one",
			Thumbnail:   "https://cdn.example.com/p1.jpg",
			RetailPrice: 500,
			Variants: []domain.Variant{
				{ID: "v1", Color: "Black", Storage: "128", Region: "Global", SalePrice: 450, InStock: true},
				{ID: "v2", Color: "White", Storage: "256", Region: "Global", SalePrice: 550, InStock: true},
			},
		},
		"p2": {
			ID:           "p2",
			Name:         "Phone Two",
			RetailPrice:  200,
			Discount:     10,
			DiscountType: domain.DiscountPercentage,
			CurrentStock: 3,
		},
	}}

	browse := usecase.NewBrowseUsecase(stub, memcache.NewMemoryCache(time.Minute, time.Minute), cfg)
	manager := store.NewManager(kvmem.NewMemoryStore(), cfg.MaxCartQuantity)
	sessionMW := middleware.NewSessionMiddleware(manager, cfg)

	cartHandler := NewCartHandler(browse)
	favoritesHandler := NewFavoritesHandler(browse)
	checkoutHandler := NewCheckoutHandler()
	catalogHandler := NewCatalogHandler(browse)

	withSession := func(h http.HandlerFunc) http.Handler {
		return sessionMW.Handler(http.HandlerFunc(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProductDetail)
	mux.HandleFunc("GET /api/v1/products/{id}/resolve", catalogHandler.ResolveVariant)
	mux.Handle("GET /api/v1/cart", withSession(cartHandler.GetCart))
	mux.Handle("POST /api/v1/cart", withSession(cartHandler.AddToCart))
	mux.Handle("PUT /api/v1/cart", withSession(cartHandler.UpdateCart))
	mux.Handle("DELETE /api/v1/cart/{productId}", withSession(cartHandler.RemoveFromCart))
	mux.Handle("DELETE /api/v1/cart", withSession(cartHandler.ClearCart))
	mux.Handle("GET /api/v1/checkout/summary", withSession(checkoutHandler.GetSummary))
	mux.Handle("GET /api/v1/favorites", withSession(favoritesHandler.GetFavorites))
	mux.Handle("POST /api/v1/favorites/toggle", withSession(favoritesHandler.ToggleFavorite))

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// client carries the session cookie between requests, like a browser would.
type apiClient struct {
	t      *testing.T
	base   string
	cookie *http.Cookie
}

func (c *apiClient) do(method, path, body string) (*http.Response, []byte) {
	c.t.Helper()

	req, err := http.NewRequest(method, c.base+path, strings.NewReader(body))
	require.NoError(c.t, err)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	for _, ck := range resp.Cookies() {
		if ck.Name == "mm_session" {
			c.cookie = ck
		}
	}

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, data
}

func TestCartEndpointsMergeAndUpdate(t *testing.T) {
	ts := newTestAPI(t)
	c := &apiClient{t: t, base: ts.URL}

	// Two adds of the same product merge into one line.
	resp, _ := c.do(http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":2}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := c.do(http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":3}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cart cartResponse
	require.NoError(t, json.Unmarshal(body, &cart))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Count)
	// Unit price comes from the resolver (first in-stock variant), not the client.
	assert.Equal(t, 450.0, cart.Lines[0].UnitPrice)

	// Update replaces the quantity outright.
	resp, body = c.do(http.MethodPut, "/api/v1/cart", `{"productId":"p1","quantity":1}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Equal(t, 1, cart.Count)

	// Quantity zero removes the line.
	resp, body = c.do(http.MethodPut, "/api/v1/cart", `{"productId":"p1","quantity":0}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Empty(t, cart.Lines)
}

func TestCartSessionPersistsAcrossRequests(t *testing.T) {
	ts := newTestAPI(t)
	c := &apiClient{t: t, base: ts.URL}

	c.do(http.MethodPost, "/api/v1/cart", `{"productId":"p2","quantity":1}`)

	resp, body := c.do(http.MethodGet, "/api/v1/cart", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cart cartResponse
	require.NoError(t, json.Unmarshal(body, &cart))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "p2", cart.Lines[0].ProductID)
	// p2 has no variants: display price is retail minus the 10% discount.
	assert.Equal(t, 180.0, cart.Lines[0].UnitPrice)

	// A different visitor (no cookie) sees an empty cart.
	other := &apiClient{t: t, base: ts.URL}
	_, body = other.do(http.MethodGet, "/api/v1/cart", "")
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Empty(t, cart.Lines)
}

func TestCartAddUnknownProduct(t *testing.T) {
	ts := newTestAPI(t)
	c := &apiClient{t: t, base: ts.URL}

	resp, _ := c.do(http.MethodPost, "/api/v1/cart", `{"productId":"nope"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckoutSummaryMatchesCart(t *testing.T) {
	ts := newTestAPI(t)
	c := &apiClient{t: t, base: ts.URL}

	c.do(http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":2}`)
	c.do(http.MethodPost, "/api/v1/cart", `{"productId":"p2","quantity":1}`)

	resp, body := c.do(http.MethodGet, "/api/v1/checkout/summary", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summary checkoutSummary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 3, summary.ItemCount)
	assert.InDelta(t, 2*450+180, summary.Total, 1e-9)
}

func TestFavoritesToggleEndpoint(t *testing.T) {
	ts := newTestAPI(t)
	c := &apiClient{t: t, base: ts.URL}

	resp, body := c.do(http.MethodPost, "/api/v1/favorites/toggle", `{"productId":"p1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled map[string]bool
	require.NoError(t, json.Unmarshal(body, &toggled))
	assert.True(t, toggled["favorited"])

	_, body = c.do(http.MethodPost, "/api/v1/favorites/toggle", `{"productId":"p1"}`)
	require.NoError(t, json.Unmarshal(body, &toggled))
	assert.False(t, toggled["favorited"])

	_, body = c.do(http.MethodGet, "/api/v1/favorites", "")
	var favs struct {
		Entries []domain.FavoriteEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(body, &favs))
	assert.Empty(t, favs.Entries)
}

func TestResolveEndpointFallsThroughTiers(t *testing.T) {
	ts := newTestAPI(t)
	c := &apiClient{t: t, base: ts.URL}

	// Black/256/Global has no exact match; storage+region picks the 256 White.
	resp, body := c.do(http.MethodGet, "/api/v1/products/p1/resolve?color=Black&storage=256&region=Global", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Resolved     *domain.Variant `json:"resolved"`
		DisplayPrice float64         `json:"displayPrice"`
		InStock      bool            `json:"inStock"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotNil(t, result.Resolved)
	assert.Equal(t, "v2", result.Resolved.ID)
	assert.Equal(t, 550.0, result.DisplayPrice)
	assert.True(t, result.InStock)
}
