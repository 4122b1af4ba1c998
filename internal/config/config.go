package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once from the environment.
// cmd/api loads .env first via godotenv; real deployments set env vars.
type Config struct {
	HTTPAddr string

	// StoreDriver selects the resource store: "mysql" (live) or "memory"
	// (in-process mock, used by dev setups and tests).
	StoreDriver string
	DBDSN       string
	MemLatency  time.Duration

	JWTSecret []byte
	TokenTTL  time.Duration

	CORSOrigins []string

	// StorageDriver selects where product images go: "local" (disk, served
	// from /uploads) or "s3".
	StorageDriver   string
	UploadDir       string
	UploadURLPrefix string
	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		StoreDriver: envOr("STORE_DRIVER", "mysql"),
		DBDSN:       os.Getenv("DB_DSN"),
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:    envDuration("TOKEN_TTL", 24*time.Hour),
		MemLatency:  envDuration("MEM_LATENCY", 0),

		StorageDriver:   envOr("STORAGE_DRIVER", "local"),
		UploadDir:       envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"),
		UploadURLPrefix: envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
		S3Region:        os.Getenv("S3_REGION"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Prefix:        envOr("S3_PREFIX", "uploads"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}

	if ms := os.Getenv("MEM_LATENCY_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n >= 0 {
			cfg.MemLatency = time.Duration(n) * time.Millisecond
		}
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	switch cfg.StoreDriver {
	case "mysql":
		if cfg.DBDSN == "" {
			return Config{}, fmt.Errorf("DB_DSN is required when STORE_DRIVER=mysql")
		}
	case "memory":
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}

	if len(cfg.JWTSecret) == 0 {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	switch cfg.StorageDriver {
	case "local":
	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBaseURL == "" {
			return Config{}, fmt.Errorf("S3_REGION, S3_BUCKET and S3_PUBLIC_BASE_URL are required when STORAGE_DRIVER=s3")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.StorageDriver)
	}

	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
