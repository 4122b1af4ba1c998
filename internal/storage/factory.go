package storage

import (
	"context"
	"fmt"

	"aydamarket.com/api/internal/config"
)

type FactoryResult struct {
	Driver  string
	Storage Storage
}

// FromConfig builds the product-image backend named by cfg.StorageDriver.
// Config validation already rejects unknown drivers and incomplete S3
// settings, so errors here come from the AWS SDK only.
func FromConfig(ctx context.Context, cfg config.Config) (FactoryResult, error) {
	switch cfg.StorageDriver {
	case "local":
		return FactoryResult{Driver: "local", Storage: NewLocal(cfg.UploadDir, cfg.UploadURLPrefix)}, nil

	case "s3":
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return FactoryResult{}, fmt.Errorf("open s3 storage: %w", err)
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}
