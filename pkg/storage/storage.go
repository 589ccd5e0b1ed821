package storage

import (
	"context"
	"io"
)

// Storage stores objects under caller-chosen keys.
type Storage interface {
	// Put uploads r under key. An empty contentType is derived from the key extension.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Get retrieves an object. The caller closes the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a single object.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every object whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `yaml:"bucket" env:"STORAGE_BUCKET"`

	// AccessKey is the AWS access key ID (required).
	AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`

	// SecretKey is the AWS secret access key (required).
	SecretKey string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`

	// Endpoint is the custom S3 endpoint URL (optional, for MinIO or other S3-compatible services).
	Endpoint string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `yaml:"region" env:"STORAGE_REGION"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `yaml:"path_style" env:"STORAGE_PATH_STYLE"`
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// applyDefaults fills in default values for empty config fields.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// validate checks that required configuration fields are set.
func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
