package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/model"
	"luxe-storefront/internal/storage"
)

// HeroStore owns the single landing-page hero asset.
type HeroStore struct {
	kv     storage.KV
	logger zerolog.Logger
}

// NewHeroStore creates a hero store over the given document store.
func NewHeroStore(kv storage.KV, logger zerolog.Logger) *HeroStore {
	return &HeroStore{
		kv:     kv,
		logger: logger.With().Str("store", "hero").Logger(),
	}
}

// Get returns the configured hero content, or the built-in default when
// none has been set yet.
func (s *HeroStore) Get(ctx context.Context) (*model.HeroContent, error) {
	var hero model.HeroContent
	if err := storage.GetJSON(ctx, s.kv, storage.KeyHeroContent, &hero); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			def := model.DefaultHeroContent()
			return &def, nil
		}
		s.logger.Error().Err(err).Msg("failed to load hero content")
		return nil, fmt.Errorf("failed to load hero content: %w", err)
	}
	return &hero, nil
}

// Set overwrites the hero content wholesale.
func (s *HeroStore) Set(ctx context.Context, hero *model.HeroContent) error {
	if hero.Type != model.HeroTypeImage && hero.Type != model.HeroTypeVideo {
		return model.NewValidationError(fmt.Sprintf("Unknown hero type %q", hero.Type))
	}
	if hero.URL == "" {
		return model.NewValidationError("Hero content requires an image or video")
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyHeroContent, hero); err != nil {
		s.logger.Error().Err(err).Str("type", hero.Type).Msg("failed to save hero content")
		return fmt.Errorf("failed to save hero content: %w", err)
	}

	s.logger.Info().Str("type", hero.Type).Msg("hero content updated")

	return nil
}
