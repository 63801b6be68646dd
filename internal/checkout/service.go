package checkout

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/model"
)

// Currency is the storefront's settlement currency.
const Currency = "INR"

// Cart is the slice of the cart store checkout needs.
type Cart interface {
	List(ctx context.Context) ([]model.CartItem, error)
	Clear(ctx context.Context) error
}

// Receipt is the outcome of a successful checkout.
type Receipt struct {
	PaymentID string `json:"paymentId"`
	Totals    Totals `json:"totals"`
}

// Service orchestrates checkout: derive totals, charge the gateway, clear
// the cart. A failed charge leaves the cart untouched and is not retried.
type Service struct {
	cart    Cart
	gateway Gateway
	logger  zerolog.Logger
}

// NewService creates a checkout service.
func NewService(cart Cart, gateway Gateway, logger zerolog.Logger) *Service {
	return &Service{
		cart:    cart,
		gateway: gateway,
		logger:  logger.With().Str("service", "checkout").Logger(),
	}
}

// Checkout charges the current cart and clears it on success.
func (s *Service) Checkout(ctx context.Context) (*Receipt, error) {
	items, err := s.cart.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, model.NewValidationError("Cart is empty")
	}

	totals := ComputeTotals(items)

	result, err := s.gateway.Charge(ctx, Request{
		AmountMinorUnits: totals.AmountMinorUnits(),
		Currency:         Currency,
		Description:      fmt.Sprintf("LUXE order, %d items", len(items)),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("charge failed, cart preserved")
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The charge went through; surface the cleanup failure rather than
		// pretending the order did not happen.
		s.logger.Error().Err(err).Str("payment_id", result.PaymentID).Msg("failed to clear cart after charge")
		return nil, fmt.Errorf("payment %s succeeded but clearing the cart failed: %w", result.PaymentID, err)
	}

	s.logger.Info().
		Str("payment_id", result.PaymentID).
		Float64("total", totals.Total).
		Int("items", len(items)).
		Msg("checkout completed")

	return &Receipt{PaymentID: result.PaymentID, Totals: totals}, nil
}
