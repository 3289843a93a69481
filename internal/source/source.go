// Package source provides access to the raw input CSV extracts, either from
// a local directory or an object-store bucket.
package source

import (
	"context"
	"fmt"
	"io"

	"github.com/MThorpester/covid-us-etl/internal/config"
)

// FileSource opens named input files for reading. Compressed files
// (.csv.gz, .csv.zst) are decompressed transparently by Open.
type FileSource interface {
	// Open returns a reader for the named file.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Location returns a human-readable location for the named file,
	// used in logs and error messages.
	Location(name string) string

	// Close releases any resources.
	Close() error
}

// NewFileSource creates a file source based on configuration.
func NewFileSource(cfg config.SourceConfig) (FileSource, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalSource(cfg.Dir)
	case "gcs":
		return NewBucketSource(fmt.Sprintf("gs://%s", cfg.Bucket), cfg.Prefix)
	case "s3":
		return NewBucketSource(s3URL(cfg.Bucket, cfg.Endpoint, cfg.Region), cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown source mode: %s", cfg.Mode)
	}
}

// s3URL builds a gocloud.dev bucket URL for S3-compatible stores.
func s3URL(bucket, endpoint, region string) string {
	url := fmt.Sprintf("s3://%s", bucket)
	sep := "?"
	if region != "" {
		url += sep + "region=" + region
		sep = "&"
	}
	if endpoint != "" {
		url += sep + "endpoint=" + endpoint + "&s3ForcePathStyle=true"
	}
	return url
}
