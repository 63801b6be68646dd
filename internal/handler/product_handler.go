package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/media"
	"luxe-storefront/internal/model"
	"luxe-storefront/internal/store"
)

// ProductHandler handles catalog HTTP requests: public reads and the
// admin-gated CRUD plus 3D asset uploads.
type ProductHandler struct {
	catalog   *store.CatalogStore
	validator *media.Validator
	assets    media.AssetStore
	logger    zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog *store.CatalogStore, validator *media.Validator, assets media.AssetStore, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:   catalog,
		validator: validator,
		assets:    assets,
		logger:    logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if product == nil {
		writeError(w, model.ErrNotFound, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, model.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	product, err := h.catalog.Create(r.Context(), &input)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, model.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	product, err := h.catalog.Update(r.Context(), id, &input)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetModel handles GET /api/products/{id}/model. A product without an
// asset answers 404; the catalog page treats that as "no 3D preview".
func (h *ProductHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	asset, err := h.catalog.GetModel(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if asset == nil {
		writeError(w, model.ErrNotFound, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// UploadModel handles PUT /api/admin/products/{id}/model with a multipart
// file field named "file". Validation runs before anything is read into
// storage.
func (h *ProductHandler) UploadModel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	filename, data, err := readUpload(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.validator.ValidateModel(filename, data); err != nil {
		writeError(w, err, h.logger)
		return
	}

	url, err := h.assets.Store(r.Context(), filename, data)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	asset := model.ModelAsset{ProductID: id, ModelURL: url, FileName: filename}
	if err := h.catalog.SetModel(r.Context(), asset); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// pathID parses the {id} path value. IDs are millisecond timestamps.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, model.ErrCodeValidation, "Invalid id")
		return 0, false
	}
	return id, true
}

// readUpload extracts the "file" field from a multipart form. The form is
// parsed with a small memory threshold; large files spill to disk before
// validation decides their fate.
func readUpload(r *http.Request) (string, []byte, error) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		return "", nil, model.NewValidationError("Expected a multipart file upload")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, model.NewValidationError("Missing file field")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, model.NewValidationError("Failed to read file. Please try again.")
	}
	return header.Filename, data, nil
}
