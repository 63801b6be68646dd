package model

import "time"

// Coupon discount types.
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// CouponStatus is derived from a coupon's expiry and usage fields. It is
// computed on read and never stored.
type CouponStatus string

const (
	CouponActive       CouponStatus = "active"
	CouponExpired      CouponStatus = "expired"
	CouponLimitReached CouponStatus = "limit_reached"
)

// expiryDateLayout is the date-only form coupon expiries are stored in.
const expiryDateLayout = "2006-01-02"

// Coupon is a promotional code as persisted in the coupons document. Codes
// are stored uppercase and are unique case-insensitively, checked at
// creation only.
type Coupon struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	Value       float64   `json:"value"`
	MinOrder    float64   `json:"minOrder"`
	MaxDiscount *float64  `json:"maxDiscount"`
	ExpiryDate  string    `json:"expiryDate,omitempty"`
	UsageLimit  *int      `json:"usageLimit"`
	UsedCount   int       `json:"usedCount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CouponInput is the payload for coupon create and update operations.
type CouponInput struct {
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	Value       Number  `json:"value"`
	MinOrder    *Number `json:"minOrder"`
	MaxDiscount *Number `json:"maxDiscount"`
	ExpiryDate  string  `json:"expiryDate"`
	UsageLimit  *Number `json:"usageLimit"`
	Description string  `json:"description"`
}

// StatusAt derives the coupon's status at the given instant. Expiry takes
// precedence over the usage limit.
func (c *Coupon) StatusAt(now time.Time) CouponStatus {
	if c.ExpiryDate != "" {
		if expiry, err := time.Parse(expiryDateLayout, c.ExpiryDate); err == nil && expiry.Before(now) {
			return CouponExpired
		}
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return CouponLimitReached
	}
	return CouponActive
}
