package router

import (
	"net/http"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/handler"
	"luxe-storefront/internal/middleware"
	"luxe-storefront/internal/store"
)

// New creates a new HTTP router with all routes and middleware configured.
// Everything under /api/admin/ requires the persisted admin session flag.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	couponHandler *handler.CouponHandler,
	heroHandler *handler.HeroHandler,
	authHandler *handler.AuthHandler,
	checkoutHandler *handler.CheckoutHandler,
	sessions *store.SessionStore,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public storefront reads
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.Get)
	mux.HandleFunc("GET /api/products/{id}/model", productHandler.GetModel)
	mux.HandleFunc("GET /api/hero", heroHandler.Get)
	mux.HandleFunc("GET /api/coupons/preview", couponHandler.Preview)

	// Cart and checkout
	mux.HandleFunc("GET /api/cart", cartHandler.List)
	mux.HandleFunc("POST /api/cart", cartHandler.Append)
	mux.HandleFunc("DELETE /api/cart", cartHandler.Clear)
	mux.HandleFunc("PUT /api/cart/{id}", cartHandler.SetQuantity)
	mux.HandleFunc("DELETE /api/cart/{id}", cartHandler.Remove)
	mux.HandleFunc("POST /api/checkout", checkoutHandler.Checkout)

	// Sessions
	mux.HandleFunc("POST /api/auth/admin/login", authHandler.AdminLogin)
	mux.HandleFunc("POST /api/auth/admin/logout", authHandler.AdminLogout)
	mux.HandleFunc("GET /api/auth/session", authHandler.GetSession)
	mux.HandleFunc("POST /api/auth/session", authHandler.SetSession)
	mux.HandleFunc("DELETE /api/auth/session", authHandler.ClearSession)

	// Admin panel surface
	mux.HandleFunc("POST /api/admin/products", productHandler.Create)
	mux.HandleFunc("PUT /api/admin/products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /api/admin/products/{id}", productHandler.Delete)
	mux.HandleFunc("PUT /api/admin/products/{id}/model", productHandler.UploadModel)
	mux.HandleFunc("GET /api/admin/coupons", couponHandler.List)
	mux.HandleFunc("POST /api/admin/coupons", couponHandler.Create)
	mux.HandleFunc("PUT /api/admin/coupons/{id}", couponHandler.Update)
	mux.HandleFunc("DELETE /api/admin/coupons/{id}", couponHandler.Delete)
	mux.HandleFunc("PUT /api/admin/hero", heroHandler.Upload)

	// Apply middleware in order: Recovery -> Logging -> CORS -> AdminAuth
	var h http.Handler = mux
	h = middleware.AdminAuth(sessions, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
