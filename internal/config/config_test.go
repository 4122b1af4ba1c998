package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("S3_REGION", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("S3_PUBLIC_BASE_URL", "")
}

func TestFromEnvDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTPAddr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("ttl = %v", cfg.TokenTTL)
	}
	if cfg.StorageDriver != "local" || cfg.UploadDir != "./storage/uploads" || cfg.UploadURLPrefix != "/uploads" {
		t.Errorf("storage defaults = %q %q %q", cfg.StorageDriver, cfg.UploadDir, cfg.UploadURLPrefix)
	}
}

func TestFromEnvRequiresS3Settings(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_REGION", "eu-central-1")
	t.Setenv("S3_BUCKET", "media")

	if _, err := FromEnv(); err == nil {
		t.Fatal("want error while S3_PUBLIC_BASE_URL is missing")
	}

	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.StorageDriver != "s3" || cfg.S3Prefix != "uploads" {
		t.Errorf("s3 config = %+v", cfg)
	}
}

func TestFromEnvRejectsUnknownStorageDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "ftp")

	if _, err := FromEnv(); err == nil {
		t.Fatal("want error for unknown storage driver")
	}
}
