package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/checkout"
)

// CheckoutHandler handles POST /api/checkout.
type CheckoutHandler struct {
	service *checkout.Service
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service *checkout.Service, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout charges the current cart. On success the cart has been cleared;
// on failure the cart is untouched and the client may simply try again.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.Checkout(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
