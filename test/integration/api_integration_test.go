package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-storefront/internal/checkout"
	"luxe-storefront/internal/config"
	"luxe-storefront/internal/handler"
	"luxe-storefront/internal/media"
	"luxe-storefront/internal/model"
	"luxe-storefront/internal/router"
	"luxe-storefront/internal/store"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	kv := NewTestKV(t, testDB, 0)

	catalog := store.NewCatalogStore(kv, logger)
	cart := store.NewCartStore(kv, logger)
	coupons := store.NewCouponStore(kv, logger)
	hero := store.NewHeroStore(kv, logger)
	sessions := store.NewSessionStore(kv, config.AuthConfig{
		AdminUsername: "admin",
		AdminPassword: "admin123",
	}, logger)

	validator := media.NewValidator(config.MediaConfig{
		MaxImageBytes: 10 * 1024 * 1024,
		MaxVideoBytes: 5 * 1024 * 1024,
		MaxModelBytes: 10 * 1024 * 1024,
	}, logger)
	assets := media.NewEmbedStore()

	checkoutService := checkout.NewService(cart, checkout.NewStubGateway(logger), logger)

	return router.New(
		handler.NewProductHandler(catalog, validator, assets, logger),
		handler.NewCartHandler(cart, logger),
		handler.NewCouponHandler(coupons, logger),
		handler.NewHeroHandler(hero, validator, assets, logger),
		handler.NewAuthHandler(sessions, logger),
		handler.NewCheckoutHandler(checkoutService, logger),
		sessions,
		logger,
	)
}

func adminLogin(t *testing.T, server http.Handler) {
	t.Helper()

	body := `{"username":"admin","password":"admin123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/admin/login", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestStorefrontAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /health returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("POST /api/admin/products without admin session returns 401", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := `{"name":"Tee","category":"Men","price":999}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("product CRUD round-trips through the document store", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		adminLogin(t, server)

		body := `{"name":"Silk Dress","category":"Women","price":"2499","badge":"New"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, 2499.0, created.Price)
		assert.Equal(t, []string{"#1a202c"}, created.Colors)

		req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var fetched model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "Silk Dress", fetched.Name)

		req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", created.ID), nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)

		req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cart flows into checkout and is cleared", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		line := `{"productId":1,"name":"Silk Dress","price":2499,"selectedSize":"M","quantity":2}`
		req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewBufferString(line))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var cartResp struct {
			Items  []model.CartItem `json:"items"`
			Totals checkout.Totals  `json:"totals"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&cartResp))
		require.Len(t, cartResp.Items, 1)
		assert.Equal(t, 4998.0, cartResp.Totals.Subtotal)
		assert.Equal(t, 99.0, cartResp.Totals.Shipping)

		req = httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var receipt checkout.Receipt
		require.NoError(t, json.NewDecoder(w.Body).Decode(&receipt))
		assert.Contains(t, receipt.PaymentID, "pay_")
		assert.Equal(t, 4998.0, receipt.Totals.Subtotal)

		req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&cartResp))
		assert.Empty(t, cartResp.Items)
	})

	t.Run("POST /api/checkout with empty cart returns 400", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("coupon create, preview and duplicate rejection", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		adminLogin(t, server)

		body := `{"code":"luxury20","type":"percentage","value":20,"minOrder":"3000"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/coupons", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/api/admin/coupons", bytes.NewBufferString(`{"code":"LUXURY20","type":"fixed","value":50}`))
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/coupons/preview?code=luxury20&total=5000", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var preview struct {
			Code     string  `json:"code"`
			Status   string  `json:"status"`
			Discount float64 `json:"discount"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&preview))
		assert.Equal(t, "LUXURY20", preview.Code)
		assert.Equal(t, "active", preview.Status)
		assert.Equal(t, 1000.0, preview.Discount)
	})

	t.Run("GET /api/hero falls back to the default", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/hero", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var hero model.HeroContent
		require.NoError(t, json.NewDecoder(w.Body).Decode(&hero))
		assert.Equal(t, model.HeroTypeImage, hero.Type)
		assert.Equal(t, "Fashion Model", hero.Alt)
	})

	t.Run("shopper session lifecycle", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		profile := `{"name":"Priya","email":"priya@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/session", bytes.NewBufferString(profile))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var user model.UserProfile
		require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
		assert.Equal(t, "priya@example.com", user.Email)

		req = httptest.NewRequest(http.MethodDelete, "/api/auth/session", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
