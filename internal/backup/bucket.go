package backup

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/gcsblob" // GCS driver
	_ "gocloud.dev/blob/s3blob"  // S3 driver
)

// BucketStore writes backup files to an object-store bucket via gocloud.dev.
type BucketStore struct {
	bucket *blob.Bucket
	url    string
	prefix string
}

// NewBucketStore opens a bucket by URL (gs://... or s3://...).
func NewBucketStore(url, prefix string) (*BucketStore, error) {
	bucket, err := blob.OpenBucket(context.Background(), url)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", url, err)
	}
	return &BucketStore{
		bucket: bucket,
		url:    url,
		prefix: prefix,
	}, nil
}

// WriteFile writes the object. Object stores are atomic per object, so no
// temp-and-rename dance is needed.
func (s *BucketStore) WriteFile(ctx context.Context, name string, data []byte) error {
	key := s.prefix + name
	w, err := s.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return fmt.Errorf("open writer for %s: %w", key, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

// URI returns the bucket URL joined with the object key.
func (s *BucketStore) URI(name string) string {
	base, _, _ := strings.Cut(s.url, "?")
	return base + "/" + s.prefix + name
}

// Close releases the bucket handle.
func (s *BucketStore) Close() error {
	return s.bucket.Close()
}
