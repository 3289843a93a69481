package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/gcsblob" // GCS driver
	_ "gocloud.dev/blob/s3blob"  // S3 driver
)

// BucketSource reads input files from an object-store bucket via gocloud.dev.
type BucketSource struct {
	bucket *blob.Bucket
	url    string
	prefix string
}

// NewBucketSource opens a bucket by URL (gs://... or s3://...).
// Uses ambient credentials (ADC for GCS, the AWS SDK chain for S3).
func NewBucketSource(url, prefix string) (*BucketSource, error) {
	bucket, err := blob.OpenBucket(context.Background(), url)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", url, err)
	}
	return &BucketSource{
		bucket: bucket,
		url:    url,
		prefix: prefix,
	}, nil
}

// Open returns a reader for the named object, decompressing if needed.
func (s *BucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.prefix + name
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", key, err)
	}
	return decompressReader(name, r)
}

// Location returns the bucket URL joined with the object key.
func (s *BucketSource) Location(name string) string {
	base, _, _ := strings.Cut(s.url, "?")
	return base + "/" + s.prefix + name
}

// Close releases the bucket handle.
func (s *BucketSource) Close() error {
	return s.bucket.Close()
}
