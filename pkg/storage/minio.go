package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStore struct {
	client *minioSDK.Client
	bucket string
	// publicBase prefixes returned URLs, e.g. "http://localhost:9000".
	publicBase string
}

type MinioConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	Bucket     string
	PublicBase string
}

// NewMinioStore connects, ensures the bucket exists, and returns the store.
func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minioSDK.New(cfg.Endpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("Bucket created: %s", cfg.Bucket)
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, publicBase: cfg.PublicBase}, nil
}

func (s *MinioStore) Save(ctx context.Context, reader io.Reader, size int64, objectName, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store object %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, objectName), nil
}

func (s *MinioStore) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minioSDK.RemoveObjectOptions{})
}
