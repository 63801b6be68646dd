package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request is the charge request handed to the payment gateway. Amounts are
// in minor currency units (paise for INR).
type Request struct {
	AmountMinorUnits int64
	Currency         string
	Description      string
}

// Result is a successful charge.
type Result struct {
	PaymentID string
}

// Gateway is the external payment boundary. Its internal protocol is
// opaque: it is invoked with an amount and either succeeds with a payment
// id or fails.
type Gateway interface {
	Charge(ctx context.Context, req Request) (*Result, error)
}

// stubGateway approves every charge and issues a synthetic payment id.
// There is no settlement behind it.
type stubGateway struct {
	logger zerolog.Logger
}

// NewStubGateway creates the stand-in payment gateway.
func NewStubGateway(logger zerolog.Logger) Gateway {
	return &stubGateway{
		logger: logger.With().Str("component", "stub-gateway").Logger(),
	}
}

func (g *stubGateway) Charge(ctx context.Context, req Request) (*Result, error) {
	paymentID := "pay_" + uuid.New().String()

	g.logger.Info().
		Int64("amount_minor_units", req.AmountMinorUnits).
		Str("currency", req.Currency).
		Str("payment_id", paymentID).
		Msg("charge approved")

	return &Result{PaymentID: paymentID}, nil
}
