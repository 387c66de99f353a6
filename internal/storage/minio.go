package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/spec-kit/refund-service/internal/config"
)

// MinioStorage keeps receipts in an S3-compatible bucket. Incoming files still
// land in a local temp directory first.
type MinioStorage struct {
	client *minio.Client
	bucket string
	tmpDir string
	logger *zap.Logger
}

// NewMinioStorage connects to the bucket, creating it when needed.
func NewMinioStorage(ctx context.Context, cfg config.StorageConfig, tmpDir string, logger *zap.Logger) (*MinioStorage, error) {
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", tmpDir, err)
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		logger.Info("created receipts bucket", zap.String("bucket", cfg.MinioBucket))
	}

	return &MinioStorage{client: client, bucket: cfg.MinioBucket, tmpDir: tmpDir, logger: logger}, nil
}

func (s *MinioStorage) Save(ctx context.Context, tempName, originalName string) (string, error) {
	if err := checkName(tempName); err != nil {
		return "", err
	}
	storedName, err := StoredName(originalName)
	if err != nil {
		return "", fmt.Errorf("generate stored name: %w", err)
	}

	src := filepath.Join(s.tmpDir, tempName)
	_, err = s.client.FPutObject(ctx, s.bucket, storedName, src, minio.PutObjectOptions{
		ContentType:  mime.TypeByExtension(filepath.Ext(storedName)),
		UserMetadata: map[string]string{"filename": originalName},
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", storedName, err)
	}

	if err := os.Remove(src); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove promoted temp file", zap.String("file", tempName), zap.Error(err))
	}
	return storedName, nil
}

func (s *MinioStorage) Delete(ctx context.Context, name string, location Location) error {
	if err := checkName(name); err != nil {
		return err
	}
	switch location {
	case LocationTmp:
		if err := os.Remove(filepath.Join(s.tmpDir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	case LocationUpload:
		return s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
	default:
		return fmt.Errorf("unknown storage location %q", location)
	}
}

// TmpDir is where the ingestion boundary writes incoming files.
func (s *MinioStorage) TmpDir() string {
	return s.tmpDir
}
