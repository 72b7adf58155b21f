package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"

	"mobimart-storefront/config"
	"mobimart-storefront/internal/delivery/http/middleware"
	v1 "mobimart-storefront/internal/delivery/http/v1"
	memcache "mobimart-storefront/internal/infrastructure/cache"
	"mobimart-storefront/internal/infrastructure/catalog"
	kvstore "mobimart-storefront/internal/infrastructure/kv"
	"mobimart-storefront/internal/store"
	"mobimart-storefront/internal/usecase"
	"mobimart-storefront/pkg/kv"
	"mobimart-storefront/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize session state backend
	kvBackend, err := newKVStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.KVBackend).Msg("Failed to initialize state store")
	}
	log.Info().Str("backend", cfg.KVBackend).Msg("Session state store ready")

	// Initialize Cache (In-Memory)
	// Default expiration 10m, cleanup every 30m
	memCache := memcache.NewMemoryCache(10*time.Minute, 30*time.Minute)

	// Remote catalog client
	catalogClient := catalog.NewClient(cfg.CatalogAPIURL, cfg.CatalogAPITimeout)
	log.Info().Str("api", cfg.CatalogAPIURL).Msg("Remote catalog configured")

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Browse Module
	browseUC := usecase.NewBrowseUsecase(catalogClient, memCache, cfg)
	catalogHandler := v1.NewCatalogHandler(browseUC)

	// Session Module
	sessionManager := store.NewManager(kvBackend, cfg.MaxCartQuantity)
	sessionMW := middleware.NewSessionMiddleware(sessionManager, cfg)

	// Cart / Favorites / Checkout / Prefs Modules
	cartHandler := v1.NewCartHandler(browseUC)
	favoritesHandler := v1.NewFavoritesHandler(browseUC)
	checkoutHandler := v1.NewCheckoutHandler()
	prefsHandler := v1.NewPrefsHandler()

	// Session-scoped routes get the cookie middleware
	withSession := func(h http.HandlerFunc) http.Handler {
		return sessionMW.Handler(http.HandlerFunc(h))
	}

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/categories", catalogHandler.GetCategories)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProductDetail)
	mux.HandleFunc("GET /api/v1/products/{id}/resolve", catalogHandler.ResolveVariant)

	// Cart
	mux.Handle("GET /api/v1/cart", withSession(cartHandler.GetCart))
	mux.Handle("POST /api/v1/cart", withSession(cartHandler.AddToCart))
	mux.Handle("PUT /api/v1/cart", withSession(cartHandler.UpdateCart))
	mux.Handle("DELETE /api/v1/cart/{productId}", withSession(cartHandler.RemoveFromCart))
	mux.Handle("DELETE /api/v1/cart", withSession(cartHandler.ClearCart))

	// Checkout (display-only summary)
	mux.Handle("GET /api/v1/checkout/summary", withSession(checkoutHandler.GetSummary))

	// Favorites
	mux.Handle("GET /api/v1/favorites", withSession(favoritesHandler.GetFavorites))
	mux.Handle("POST /api/v1/favorites", withSession(favoritesHandler.AddFavorite))
	mux.Handle("POST /api/v1/favorites/toggle", withSession(favoritesHandler.ToggleFavorite))
	mux.Handle("DELETE /api/v1/favorites/{productId}", withSession(favoritesHandler.RemoveFavorite))

	// Preferences
	mux.Handle("GET /api/v1/prefs", withSession(prefsHandler.GetPrefs))
	mux.Handle("PUT /api/v1/prefs", withSession(prefsHandler.UpdatePrefs))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("mobimart-storefront", "1.0.0", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("mobimart-storefront")
}

// newKVStore builds the durable state backend selected by config.
func newKVStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.KVBackend {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := kvstore.NewPgxPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return kvstore.NewPostgresStore(ctx, pool)
	case "memory":
		return kvstore.NewMemoryStore(), nil
	default:
		return kvstore.NewFileStore(cfg.StateDir)
	}
}
