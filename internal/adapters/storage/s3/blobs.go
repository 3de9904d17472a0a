package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const keyPrefix = "pet-photos/"

// BlobStore sube fotos al bucket. La URL devuelta es pública: el bucket
// (o el CDN de PublicBaseURL) tiene lectura abierta para este prefijo.
type BlobStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type Config struct {
	Bucket        string
	Region        string
	PublicBaseURL string
}

func New(ctx context.Context, cfg Config) (*BlobStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &BlobStore{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: PublicURL(cfg),
	}, nil
}

// PublicURL arma la base de las URLs públicas.
func PublicURL(cfg Config) string {
	if base := strings.TrimSpace(cfg.PublicBaseURL); base != "" {
		return strings.TrimRight(base, "/")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

func (b *BlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	objectKey := keyPrefix + key

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to S3: %w", err)
	}
	return b.baseURL + "/" + objectKey, nil
}
