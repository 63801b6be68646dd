package media

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"luxe-storefront/internal/config"
	"luxe-storefront/internal/model"
)

// Kind classifies an accepted upload.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindModel Kind = "model"
)

// Validator checks uploads against MIME category and size ceilings before
// anything touches storage.
type Validator struct {
	cfg    config.MediaConfig
	logger zerolog.Logger
}

// NewValidator creates an upload validator with the configured ceilings.
func NewValidator(cfg config.MediaConfig, logger zerolog.Logger) *Validator {
	return &Validator{
		cfg:    cfg,
		logger: logger.With().Str("component", "media-validator").Logger(),
	}
}

// ValidateHero classifies a hero upload as image or video and enforces the
// per-kind ceiling. The rejection message names the ceiling and the actual
// size so the admin knows what to compress.
func (v *Validator) ValidateHero(filename string, data []byte) (Kind, error) {
	mime := mimetype.Detect(data)

	var kind Kind
	var maxBytes int
	switch {
	case strings.HasPrefix(mime.String(), "image/"):
		kind = KindImage
		maxBytes = v.cfg.MaxImageBytes
	case strings.HasPrefix(mime.String(), "video/"):
		kind = KindVideo
		maxBytes = v.cfg.MaxVideoBytes
	default:
		v.logger.Warn().
			Str("file_name", filename).
			Str("mime", mime.String()).
			Msg("unsupported hero upload")
		return "", model.NewDomainError(model.ErrCodeUnsupportedFileType, "Please upload an image or video file")
	}

	if len(data) > maxBytes {
		v.logger.Warn().
			Str("file_name", filename).
			Str("mime", mime.String()).
			Int("size_bytes", len(data)).
			Int("max_bytes", maxBytes).
			Msg("hero upload too large")
		noun := "Images"
		if kind == KindVideo {
			noun = "Videos"
		}
		return "", model.NewDomainError(model.ErrCodeFileTooLarge, fmt.Sprintf(
			"File too large! %s must be under %s. Your file: %s. Please compress it first.",
			noun, formatMB(maxBytes), formatMB(len(data)),
		))
	}

	return kind, nil
}

// ValidateModel checks a 3D model upload: GLB or GLTF by extension, within
// the model ceiling. The GLTF JSON container defeats content sniffing, so
// the extension is the authority here.
func (v *Validator) ValidateModel(filename string, data []byte) error {
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".glb") && !strings.HasSuffix(lower, ".gltf") {
		v.logger.Warn().Str("file_name", filename).Msg("unsupported 3D model upload")
		return model.NewDomainError(model.ErrCodeUnsupportedFileType, "Please upload a GLB or GLTF file")
	}

	if len(data) > v.cfg.MaxModelBytes {
		v.logger.Warn().
			Str("file_name", filename).
			Int("size_bytes", len(data)).
			Int("max_bytes", v.cfg.MaxModelBytes).
			Msg("3D model upload too large")
		return model.NewDomainError(model.ErrCodeFileTooLarge, fmt.Sprintf(
			"File too large! 3D models must be under %s. Your file: %s.",
			formatMB(v.cfg.MaxModelBytes), formatMB(len(data)),
		))
	}

	return nil
}

// DataURL encodes data as a data: URL, sniffing the payload for its MIME
// type. This is the embedded form uploads take when no object storage is
// configured.
func DataURL(data []byte) string {
	mime := mimetype.Detect(data)
	return fmt.Sprintf("data:%s;base64,%s", mime.String(), base64.StdEncoding.EncodeToString(data))
}

// formatMB renders a byte count in megabytes, whole numbers without a
// decimal point (5MB, 6.25MB).
func formatMB(bytes int) string {
	mb := float64(bytes) / (1024 * 1024)
	if mb == float64(int64(mb)) {
		return fmt.Sprintf("%dMB", int64(mb))
	}
	return fmt.Sprintf("%.2fMB", mb)
}
