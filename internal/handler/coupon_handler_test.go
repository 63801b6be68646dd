package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-storefront/internal/model"
	"luxe-storefront/internal/storage"
	"luxe-storefront/internal/store"
)

func newCouponHandler(t *testing.T) (*CouponHandler, *store.CouponStore) {
	t.Helper()
	kv := storage.NewMemory(0, zerolog.Nop())
	coupons := store.NewCouponStore(kv, zerolog.Nop())
	h := NewCouponHandler(coupons, zerolog.Nop())
	return h, coupons
}

func TestCouponHandlerCreate(t *testing.T) {
	h, coupons := newCouponHandler(t)

	body := `{"code":"save20","type":"percentage","value":20,"minOrder":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/coupons", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var view struct {
		model.Coupon
		Status model.CouponStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "SAVE20", view.Code)
	assert.Equal(t, model.CouponActive, view.Status)
	assert.Zero(t, view.UsedCount)

	// Same code in different case answers 409 and leaves the store unchanged.
	req = httptest.NewRequest(http.MethodPost, "/api/admin/coupons", bytes.NewBufferString(`{"code":"Save20","type":"fixed","value":50}`))
	rec = httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, model.ErrCodeDuplicateCode, errResp.Error)

	all, err := coupons.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCouponHandlerPreview(t *testing.T) {
	h, coupons := newCouponHandler(t)
	h.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	_, err := coupons.Create(t.Context(), &model.CouponInput{
		Code: "SAVE20", Type: model.CouponTypePercentage, Value: 20,
	})
	require.NoError(t, err)
	_, err = coupons.Create(t.Context(), &model.CouponInput{
		Code: "OLD", Type: model.CouponTypeFixed, Value: 100, ExpiryDate: "2024-01-01",
	})
	require.NoError(t, err)

	tests := []struct {
		name             string
		query            string
		expectedStatus   int
		expectedDiscount float64
		expectedCoupon   model.CouponStatus
	}{
		{
			name:             "Active percentage coupon",
			query:            "code=save20&total=1000",
			expectedStatus:   http.StatusOK,
			expectedDiscount: 200,
			expectedCoupon:   model.CouponActive,
		},
		{
			name:             "Expired coupon discounts nothing",
			query:            "code=OLD&total=1000",
			expectedStatus:   http.StatusOK,
			expectedDiscount: 0,
			expectedCoupon:   model.CouponExpired,
		},
		{
			name:           "Unknown code",
			query:          "code=NOPE&total=1000",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Missing code",
			query:          "total=1000",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative total",
			query:          "code=SAVE20&total=-1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/coupons/preview?"+tt.query, nil)
			rec := httptest.NewRecorder()

			h.Preview(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp struct {
				Code     string             `json:"code"`
				Status   model.CouponStatus `json:"status"`
				Discount float64            `json:"discount"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCoupon, resp.Status)
			assert.Equal(t, tt.expectedDiscount, resp.Discount)
		})
	}
}
