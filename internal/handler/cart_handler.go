package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/checkout"
	"luxe-storefront/internal/model"
	"luxe-storefront/internal/store"
)

// CartHandler handles cart HTTP requests. List responses carry the derived
// totals alongside the lines; totals are computed per request, never stored.
type CartHandler struct {
	cart   *store.CartStore
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart *store.CartStore, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse pairs the cart lines with their derived totals.
type cartResponse struct {
	Items  []model.CartItem `json:"items"`
	Totals checkout.Totals  `json:"totals"`
}

// List handles GET /api/cart.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.cart.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: items, Totals: checkout.ComputeTotals(items)})
}

// Append handles POST /api/cart.
func (h *CartHandler) Append(w http.ResponseWriter, r *http.Request) {
	var input model.CartLineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, model.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	item, err := h.cart.Append(r.Context(), &input)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// SetQuantity handles PUT /api/cart/{id}.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, model.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	item, err := h.cart.SetQuantity(r.Context(), id, body.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Remove handles DELETE /api/cart/{id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.cart.Remove(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
