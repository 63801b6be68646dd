package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/model"
	"luxe-storefront/internal/storage"
)

// CartStore owns the shopper's cart lines. Lines are append-only: an
// identical product/size/color combination produces a second line rather
// than a quantity bump on the first.
type CartStore struct {
	kv     storage.KV
	logger zerolog.Logger
	now    func() time.Time
}

// NewCartStore creates a cart store over the given document store.
func NewCartStore(kv storage.KV, logger zerolog.Logger) *CartStore {
	return &CartStore{
		kv:     kv,
		logger: logger.With().Str("store", "cart").Logger(),
		now:    time.Now,
	}
}

// List returns all cart lines in insertion order.
func (s *CartStore) List(ctx context.Context) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := storage.GetJSON(ctx, s.kv, storage.KeyCartItems, &items); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []model.CartItem{}, nil
		}
		s.logger.Error().Err(err).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return items, nil
}

// Append adds a new line to the cart. It never merges with an existing line.
func (s *CartStore) Append(ctx context.Context, input *model.CartLineInput) (*model.CartItem, error) {
	if input.Quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}
	if !model.ValidSize(input.SelectedSize) {
		return nil, model.NewValidationError(fmt.Sprintf("Unknown size %q", input.SelectedSize))
	}
	if input.Name == "" {
		return nil, model.NewValidationError("Cart line name is required")
	}

	item := model.CartItem{
		ID:            s.now().UnixMilli(),
		ProductID:     input.ProductID,
		Name:          input.Name,
		Price:         input.Price.Float(),
		Category:      input.Category,
		Image:         input.Image,
		SelectedSize:  input.SelectedSize,
		SelectedColor: input.SelectedColor,
		Quantity:      input.Quantity,
	}

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, item)

	if err := storage.SetJSON(ctx, s.kv, storage.KeyCartItems, items); err != nil {
		s.logger.Error().Err(err).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Info().
		Int64("line_id", item.ID).
		Int64("product_id", item.ProductID).
		Int("quantity", item.Quantity).
		Msg("cart line appended")

	return &item, nil
}

// SetQuantity sets a line's quantity. Quantities below 1 are rejected with
// the line unchanged; a quantity of zero never deletes the line.
func (s *CartStore) SetQuantity(ctx context.Context, id int64, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var updated *model.CartItem
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			updated = &items[i]
			break
		}
	}
	if updated == nil {
		return nil, model.ErrNotFound
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyCartItems, items); err != nil {
		s.logger.Error().Err(err).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return updated, nil
}

// Remove deletes a single line from the cart.
func (s *CartStore) Remove(ctx context.Context, id int64) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return model.ErrNotFound
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyCartItems, kept); err != nil {
		s.logger.Error().Err(err).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Info().Int64("line_id", id).Msg("cart line removed")

	return nil
}

// Clear empties the cart. Checkout calls this after a successful charge.
func (s *CartStore) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, storage.KeyCartItems); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.logger.Info().Msg("cart cleared")
	return nil
}
