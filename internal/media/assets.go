package media

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AssetStore turns an accepted upload into a persistable URL: either an
// embedded data URL or an object-storage URL.
type AssetStore interface {
	// Store persists the upload and returns the URL to save in its place.
	Store(ctx context.Context, filename string, data []byte) (string, error)
}

// embedStore encodes uploads as data URLs, the default when no object
// storage is configured. Large embedded payloads are what make the document
// store's quota error reachable.
type embedStore struct{}

// NewEmbedStore creates an AssetStore that embeds uploads as data URLs.
func NewEmbedStore() AssetStore {
	return embedStore{}
}

func (embedStore) Store(ctx context.Context, filename string, data []byte) (string, error) {
	return DataURL(data), nil
}

// s3Store uploads assets to an S3 bucket and persists the object URL,
// keeping oversized payloads out of the document store entirely.
type s3Store struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed asset store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (AssetStore, error) {
	logger = logger.With().Str("component", "s3-asset-store").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 asset store initialised")

	return &s3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		prefix: prefix,
		logger: logger,
	}, nil
}

func (s *s3Store) Store(ctx context.Context, filename string, data []byte) (string, error) {
	key := s.prefix + uuid.New().String() + filepath.Ext(filename)
	contentType := mimeOf(data)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to upload asset")
		return "", fmt.Errorf("failed to upload asset %s: %w", key, err)
	}

	s.logger.Info().
		Str("key", key).
		Int("size_bytes", len(data)).
		Msg("asset uploaded")

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func mimeOf(data []byte) string {
	return mimetype.Detect(data).String()
}
