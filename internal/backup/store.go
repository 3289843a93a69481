// Package backup writes the cleaned tables to a backup store as CSV files
// (and optionally parquet snapshots) for manual inspection. Nothing
// downstream consumes these artifacts.
package backup

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"

	"github.com/MThorpester/covid-us-etl/internal/config"
)

// Store abstracts writing backup artifacts to storage.
type Store interface {
	// WriteFile writes data under the given name.
	WriteFile(ctx context.Context, name string, data []byte) error

	// URI returns the canonical URI for the given name.
	// For local: file:///path, GCS: gs://bucket/path, S3: s3://bucket/path.
	URI(name string) string

	// Close releases any resources.
	Close() error
}

// NewStore creates a backup store based on configuration.
func NewStore(cfg config.BackupConfig) (Store, error) {
	switch cfg.Backend {
	case "local":
		return NewLocalStore(cfg.Dir, cfg.Prefix)
	case "gcs":
		return NewBucketStore(fmt.Sprintf("gs://%s", cfg.Bucket), cfg.Prefix)
	case "s3":
		url := fmt.Sprintf("s3://%s", cfg.Bucket)
		sep := "?"
		if cfg.Region != "" {
			url += sep + "region=" + cfg.Region
			sep = "&"
		}
		if cfg.Endpoint != "" {
			url += sep + "endpoint=" + cfg.Endpoint + "&s3ForcePathStyle=true"
		}
		return NewBucketStore(url, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown backup backend: %s", cfg.Backend)
	}
}

// WriteFrameCSV serializes a dataframe as CSV and writes it to the store.
func WriteFrameCSV(ctx context.Context, store Store, name string, df dataframe.DataFrame) error {
	var buf bytes.Buffer
	if err := df.WriteCSV(&buf); err != nil {
		return fmt.Errorf("serialize %s: %w", name, err)
	}
	if err := store.WriteFile(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
