package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/checkout"
	"luxe-storefront/internal/model"
	"luxe-storefront/internal/store"
)

// CouponHandler handles coupon HTTP requests: admin-gated CRUD plus a
// public read-only discount preview.
type CouponHandler struct {
	coupons *store.CouponStore
	logger  zerolog.Logger
	now     func() time.Time
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(coupons *store.CouponStore, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		coupons: coupons,
		logger:  logger.With().Str("handler", "coupon").Logger(),
		now:     time.Now,
	}
}

// couponView decorates a coupon with its derived status.
type couponView struct {
	model.Coupon
	Status model.CouponStatus `json:"status"`
}

// List handles GET /api/admin/coupons.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	now := h.now()
	views := make([]couponView, 0, len(coupons))
	for _, c := range coupons {
		views = append(views, couponView{Coupon: c, Status: c.StatusAt(now)})
	}
	writeJSON(w, http.StatusOK, views)
}

// Create handles POST /api/admin/coupons.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CouponInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, model.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	coupon, err := h.coupons.Create(r.Context(), &input)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, couponView{Coupon: *coupon, Status: coupon.StatusAt(h.now())})
}

// Update handles PUT /api/admin/coupons/{id}.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input model.CouponInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, model.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	coupon, err := h.coupons.Update(r.Context(), id, &input)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, couponView{Coupon: *coupon, Status: coupon.StatusAt(h.now())})
}

// Delete handles DELETE /api/admin/coupons/{id}.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.coupons.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// previewResponse is the read-only discount preview. It never marks the
// coupon used.
type previewResponse struct {
	Code     string             `json:"code"`
	Status   model.CouponStatus `json:"status"`
	Discount float64            `json:"discount"`
}

// Preview handles GET /api/coupons/preview?code=&total=.
func (h *CouponHandler) Preview(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeBadRequest(w, model.ErrCodeValidation, "Coupon code is required")
		return
	}

	total, err := strconv.ParseFloat(r.URL.Query().Get("total"), 64)
	if err != nil || total < 0 {
		writeBadRequest(w, model.ErrCodeValidation, "Invalid order total")
		return
	}

	coupon, err := h.coupons.GetByCode(r.Context(), code)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if coupon == nil {
		writeError(w, model.ErrNotFound, h.logger)
		return
	}

	now := h.now()
	writeJSON(w, http.StatusOK, previewResponse{
		Code:     coupon.Code,
		Status:   coupon.StatusAt(now),
		Discount: checkout.CouponDiscount(coupon, total, now),
	})
}
