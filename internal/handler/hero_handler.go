package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/media"
	"luxe-storefront/internal/model"
	"luxe-storefront/internal/store"
)

// HeroHandler handles landing-page hero requests: a public read and an
// admin-gated upload.
type HeroHandler struct {
	hero      *store.HeroStore
	validator *media.Validator
	assets    media.AssetStore
	logger    zerolog.Logger
}

// NewHeroHandler creates a new hero handler.
func NewHeroHandler(hero *store.HeroStore, validator *media.Validator, assets media.AssetStore, logger zerolog.Logger) *HeroHandler {
	return &HeroHandler{
		hero:      hero,
		validator: validator,
		assets:    assets,
		logger:    logger.With().Str("handler", "hero").Logger(),
	}
}

// Get handles GET /api/hero.
func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	hero, err := h.hero.Get(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, hero)
}

// Upload handles PUT /api/admin/hero with a multipart "file" field and an
// optional "alt" field. The upload is validated before any storage write,
// so an oversize file is rejected with its specific message rather than a
// quota failure after the fact.
func (h *HeroHandler) Upload(w http.ResponseWriter, r *http.Request) {
	filename, data, err := readUpload(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	kind, err := h.validator.ValidateHero(filename, data)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	url, err := h.assets.Store(r.Context(), filename, data)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	hero := model.HeroContent{
		Type: string(kind),
		URL:  url,
		Alt:  r.FormValue("alt"),
	}
	if err := h.hero.Set(r.Context(), &hero); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, hero)
}
