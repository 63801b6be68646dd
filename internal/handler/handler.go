package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/model"
	"luxe-storefront/internal/storage"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps an error onto the HTTP surface. Domain errors keep their
// code and message; storage quota violations become 413 so oversized
// uploads get a specific answer; everything else is a generic 500.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var derr *model.DomainError
	if errors.As(err, &derr) {
		status := statusForCode(derr.Code)
		logger.Debug().Str("code", derr.Code).Int("status", status).Msg(derr.Message)
		writeJSON(w, status, model.ErrorResponse{Error: derr.Code, Message: derr.Message})
		return
	}

	if errors.Is(err, storage.ErrQuotaExceeded) {
		logger.Warn().Err(err).Msg("storage quota exceeded")
		writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{
			Error:   model.ErrCodeQuotaExceeded,
			Message: "File too large for storage! Please use a smaller file or compress it.",
		})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "Something went wrong. Please try again.",
	})
}

// writeBadRequest writes a 400 with an explicit code and message.
func writeBadRequest(w http.ResponseWriter, code, message string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: code, Message: message})
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidQuantity,
		model.ErrCodeUnsupportedFileType, model.ErrCodeFileTooLarge,
		model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeDuplicateCode:
		return http.StatusConflict
	case model.ErrCodeQuotaExceeded:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
