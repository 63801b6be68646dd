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

// CatalogStore owns the product list and per-product 3D assets. Products are
// written only through the admin surface; deleting a product does not
// cascade to its 3D asset or to cart lines referencing it.
type CatalogStore struct {
	kv     storage.KV
	logger zerolog.Logger
	now    func() time.Time
}

// NewCatalogStore creates a catalog store over the given document store.
func NewCatalogStore(kv storage.KV, logger zerolog.Logger) *CatalogStore {
	return &CatalogStore{
		kv:     kv,
		logger: logger.With().Str("store", "catalog").Logger(),
		now:    time.Now,
	}
}

// List returns all products in insertion order. An absent document is an
// empty catalog, not an error.
func (s *CatalogStore) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := storage.GetJSON(ctx, s.kv, storage.KeyProducts, &products); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []model.Product{}, nil
		}
		s.logger.Error().Err(err).Msg("failed to load products")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// Get returns the product with the given id, or nil when it no longer
// exists. Consumers treat a nil product as "no extra detail available";
// dangling references from cart lines or 3D assets never fail.
func (s *CatalogStore) Get(ctx context.Context, id int64) (*model.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	s.logger.Debug().Int64("product_id", id).Msg("product not found")
	return nil, nil
}

// Create validates and appends a new product. The id is the creation
// timestamp in milliseconds; colors defaults to a single default swatch.
func (s *CatalogStore) Create(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	product, err := s.buildProduct(input)
	if err != nil {
		return nil, err
	}
	product.ID = s.now().UnixMilli()

	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	products = append(products, *product)

	if err := storage.SetJSON(ctx, s.kv, storage.KeyProducts, products); err != nil {
		s.logger.Error().Err(err).Msg("failed to save products")
		return nil, fmt.Errorf("failed to save products: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Str("category", product.Category).
		Msg("product created")

	return product, nil
}

// Update replaces the fields of an existing product, keeping its id.
func (s *CatalogStore) Update(ctx context.Context, id int64, input *model.ProductInput) (*model.Product, error) {
	product, err := s.buildProduct(input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range products {
		if products[i].ID == id {
			products[i] = *product
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrNotFound
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyProducts, products); err != nil {
		s.logger.Error().Err(err).Msg("failed to save products")
		return nil, fmt.Errorf("failed to save products: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	return product, nil
}

// Delete removes a product. The product's 3D asset and any cart lines
// referencing it are left in place.
func (s *CatalogStore) Delete(ctx context.Context, id int64) error {
	products, err := s.List(ctx)
	if err != nil {
		return err
	}

	remaining := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return model.ErrNotFound
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyProducts, remaining); err != nil {
		s.logger.Error().Err(err).Msg("failed to save products")
		return fmt.Errorf("failed to save products: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}

// Models returns all 3D assets.
func (s *CatalogStore) Models(ctx context.Context) ([]model.ModelAsset, error) {
	var assets []model.ModelAsset
	if err := storage.GetJSON(ctx, s.kv, storage.KeyModels, &assets); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []model.ModelAsset{}, nil
		}
		s.logger.Error().Err(err).Msg("failed to load 3D assets")
		return nil, fmt.Errorf("failed to load 3D assets: %w", err)
	}
	return assets, nil
}

// GetModel returns the 3D asset for a product, or nil when none exists.
func (s *CatalogStore) GetModel(ctx context.Context, productID int64) (*model.ModelAsset, error) {
	assets, err := s.Models(ctx)
	if err != nil {
		return nil, err
	}
	for i := range assets {
		if assets[i].ProductID == productID {
			return &assets[i], nil
		}
	}
	return nil, nil
}

// SetModel attaches a 3D asset to a product. A product holds at most one
// asset; any existing slot is filtered out and the new asset appended.
func (s *CatalogStore) SetModel(ctx context.Context, asset model.ModelAsset) error {
	assets, err := s.Models(ctx)
	if err != nil {
		return err
	}

	kept := assets[:0]
	for _, a := range assets {
		if a.ProductID != asset.ProductID {
			kept = append(kept, a)
		}
	}
	kept = append(kept, asset)

	if err := storage.SetJSON(ctx, s.kv, storage.KeyModels, kept); err != nil {
		s.logger.Error().Err(err).Int64("product_id", asset.ProductID).Msg("failed to save 3D assets")
		return fmt.Errorf("failed to save 3D assets: %w", err)
	}

	s.logger.Info().
		Int64("product_id", asset.ProductID).
		Str("file_name", asset.FileName).
		Msg("3D asset stored")

	return nil
}

// buildProduct validates and coerces input into a Product without an id.
func (s *CatalogStore) buildProduct(input *model.ProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, model.NewValidationError("Product name is required")
	}
	if input.Category == "" {
		return nil, model.NewValidationError("Product category is required")
	}
	if input.Price <= 0 {
		return nil, model.NewValidationError("Product price must be greater than zero")
	}

	switch input.Badge {
	case "", model.BadgeNew, model.BadgeSale, model.BadgeTrending, model.BadgeBestseller:
	default:
		return nil, model.NewValidationError(fmt.Sprintf("Unknown badge %q", input.Badge))
	}

	colors := input.Colors
	if len(colors) == 0 {
		colors = []string{model.DefaultColor}
	}

	var originalPrice *float64
	if input.OriginalPrice != nil && *input.OriginalPrice > 0 {
		v := input.OriginalPrice.Float()
		originalPrice = &v
	}

	return &model.Product{
		Name:          input.Name,
		Category:      input.Category,
		Price:         input.Price.Float(),
		OriginalPrice: originalPrice,
		Description:   input.Description,
		Image:         input.Image,
		Colors:        colors,
		Badge:         input.Badge,
	}, nil
}
