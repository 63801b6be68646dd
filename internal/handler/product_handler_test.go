package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-storefront/internal/config"
	"luxe-storefront/internal/media"
	"luxe-storefront/internal/model"
	"luxe-storefront/internal/storage"
	"luxe-storefront/internal/store"
)

func newProductHandler(t *testing.T) (*ProductHandler, *store.CatalogStore) {
	t.Helper()
	kv := storage.NewMemory(0, zerolog.Nop())
	catalog := store.NewCatalogStore(kv, zerolog.Nop())
	validator := media.NewValidator(config.MediaConfig{
		MaxImageBytes: 10 * 1024 * 1024,
		MaxVideoBytes: 5 * 1024 * 1024,
		MaxModelBytes: 10 * 1024 * 1024,
	}, zerolog.Nop())
	h := NewProductHandler(catalog, validator, media.NewEmbedStore(), zerolog.Nop())
	return h, catalog
}

func TestProductHandlerCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success",
			body:           `{"name":"Tee","category":"Men","price":999}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Success with string-form numbers",
			body:           `{"name":"Tee","category":"Men","price":"999","originalPrice":"1299"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing name",
			body:           `{"category":"Men","price":999}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.ErrCodeValidation,
		},
		{
			name:           "Invalid JSON",
			body:           `{name:`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newProductHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedError != "" {
				var errResp model.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.expectedError, errResp.Error)
				return
			}

			var product model.Product
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
			assert.NotZero(t, product.ID)
			assert.Equal(t, 999.0, product.Price)
			assert.Equal(t, []string{"#1a202c"}, product.Colors)
		})
	}
}

func TestProductHandlerGet(t *testing.T) {
	h, catalog := newProductHandler(t)

	created, err := catalog.Create(t.Context(), &model.ProductInput{Name: "Tee", Category: "Men", Price: 999})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+strconv.FormatInt(created.ID, 10), nil)
	req.SetPathValue("id", strconv.FormatInt(created.ID, 10))
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var product model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, created.ID, product.ID)

	// A deleted or never-existing product answers 404, not a crash.
	req = httptest.NewRequest(http.MethodGet, "/api/products/42", nil)
	req.SetPathValue("id", "42")
	rec = httptest.NewRecorder()

	h.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandlerUploadModel(t *testing.T) {
	h, catalog := newProductHandler(t)

	created, err := catalog.Create(t.Context(), &model.ProductInput{Name: "Tee", Category: "Men", Price: 999})
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "tee.glb")
	require.NoError(t, err)
	_, err = fw.Write([]byte("glTF binary payload"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	idStr := strconv.FormatInt(created.ID, 10)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/products/"+idStr+"/model", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetPathValue("id", idStr)
	rec := httptest.NewRecorder()

	h.UploadModel(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var asset model.ModelAsset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &asset))
	assert.Equal(t, created.ID, asset.ProductID)
	assert.Equal(t, "tee.glb", asset.FileName)
	assert.Contains(t, asset.ModelURL, "base64,")
}

func TestProductHandlerUploadModelRejectsWrongExtension(t *testing.T) {
	h, _ := newProductHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "tee.obj")
	require.NoError(t, err)
	_, err = fw.Write([]byte("v 0 0 0"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/admin/products/1/model", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	h.UploadModel(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, model.ErrCodeUnsupportedFileType, errResp.Error)
}
