package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/model"
	"luxe-storefront/internal/storage"
)

// CouponStore owns promotional codes. Codes are normalised to uppercase and
// unique case-insensitively among all coupons, checked at creation only;
// Update deliberately skips the re-check, matching the admin surface it
// replaces.
type CouponStore struct {
	kv     storage.KV
	logger zerolog.Logger
	now    func() time.Time
}

// NewCouponStore creates a coupon store over the given document store.
func NewCouponStore(kv storage.KV, logger zerolog.Logger) *CouponStore {
	return &CouponStore{
		kv:     kv,
		logger: logger.With().Str("store", "coupon").Logger(),
		now:    time.Now,
	}
}

// List returns all coupons in insertion order.
func (s *CouponStore) List(ctx context.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := storage.GetJSON(ctx, s.kv, storage.KeyCoupons, &coupons); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []model.Coupon{}, nil
		}
		s.logger.Error().Err(err).Msg("failed to load coupons")
		return nil, fmt.Errorf("failed to load coupons: %w", err)
	}
	return coupons, nil
}

// GetByCode returns the coupon matching code case-insensitively, or nil.
func (s *CouponStore) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	coupons, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, code) {
			return &coupons[i], nil
		}
	}
	return nil, nil
}

// Create validates and appends a new coupon. A code equal to an existing
// one case-insensitively fails with DuplicateCode and leaves the store
// unchanged.
func (s *CouponStore) Create(ctx context.Context, input *model.CouponInput) (*model.Coupon, error) {
	coupon, err := s.buildCoupon(input)
	if err != nil {
		return nil, err
	}

	coupons, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, coupon.Code) {
			s.logger.Warn().Str("code", coupon.Code).Msg("duplicate coupon code rejected")
			return nil, model.ErrDuplicateCode
		}
	}

	coupon.ID = s.now().UnixMilli()
	coupon.UsedCount = 0
	coupon.CreatedAt = s.now()

	coupons = append(coupons, *coupon)
	if err := storage.SetJSON(ctx, s.kv, storage.KeyCoupons, coupons); err != nil {
		s.logger.Error().Err(err).Msg("failed to save coupons")
		return nil, fmt.Errorf("failed to save coupons: %w", err)
	}

	s.logger.Info().
		Int64("coupon_id", coupon.ID).
		Str("code", coupon.Code).
		Str("type", coupon.Type).
		Msg("coupon created")

	return coupon, nil
}

// Update replaces the fields of an existing coupon, preserving its id,
// usedCount and creation time. Code uniqueness is not re-checked.
func (s *CouponStore) Update(ctx context.Context, id int64, input *model.CouponInput) (*model.Coupon, error) {
	coupon, err := s.buildCoupon(input)
	if err != nil {
		return nil, err
	}

	coupons, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var updated *model.Coupon
	for i := range coupons {
		if coupons[i].ID == id {
			coupon.ID = id
			coupon.UsedCount = coupons[i].UsedCount
			coupon.CreatedAt = coupons[i].CreatedAt
			coupons[i] = *coupon
			updated = &coupons[i]
			break
		}
	}
	if updated == nil {
		return nil, model.ErrNotFound
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyCoupons, coupons); err != nil {
		s.logger.Error().Err(err).Msg("failed to save coupons")
		return nil, fmt.Errorf("failed to save coupons: %w", err)
	}

	s.logger.Info().Int64("coupon_id", id).Str("code", updated.Code).Msg("coupon updated")

	return updated, nil
}

// Delete removes a coupon.
func (s *CouponStore) Delete(ctx context.Context, id int64) error {
	coupons, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := coupons[:0]
	found := false
	for _, c := range coupons {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return model.ErrNotFound
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyCoupons, kept); err != nil {
		s.logger.Error().Err(err).Msg("failed to save coupons")
		return fmt.Errorf("failed to save coupons: %w", err)
	}

	s.logger.Info().Int64("coupon_id", id).Msg("coupon deleted")

	return nil
}

// buildCoupon validates and coerces input into a Coupon without identity
// fields.
func (s *CouponStore) buildCoupon(input *model.CouponInput) (*model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, model.NewValidationError("Coupon code is required")
	}
	if input.Value <= 0 {
		return nil, model.NewValidationError("Coupon value must be greater than zero")
	}

	couponType := input.Type
	if couponType == "" {
		couponType = model.CouponTypePercentage
	}
	if couponType != model.CouponTypePercentage && couponType != model.CouponTypeFixed {
		return nil, model.NewValidationError(fmt.Sprintf("Unknown coupon type %q", input.Type))
	}

	if input.ExpiryDate != "" {
		if _, err := time.Parse("2006-01-02", input.ExpiryDate); err != nil {
			return nil, model.NewValidationError(fmt.Sprintf("Invalid expiry date %q, expected YYYY-MM-DD", input.ExpiryDate))
		}
	}

	var minOrder float64
	if input.MinOrder != nil {
		minOrder = input.MinOrder.Float()
	}

	var maxDiscount *float64
	if input.MaxDiscount != nil && *input.MaxDiscount > 0 {
		v := input.MaxDiscount.Float()
		maxDiscount = &v
	}

	var usageLimit *int
	if input.UsageLimit != nil && *input.UsageLimit > 0 {
		v := int(input.UsageLimit.Float())
		usageLimit = &v
	}

	return &model.Coupon{
		Code:        code,
		Type:        couponType,
		Value:       input.Value.Float(),
		MinOrder:    minOrder,
		MaxDiscount: maxDiscount,
		ExpiryDate:  input.ExpiryDate,
		UsageLimit:  usageLimit,
		Description: input.Description,
	}, nil
}
