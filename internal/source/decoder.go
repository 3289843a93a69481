package source

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// decompressReader wraps r with the decompressor implied by the file name.
// Plain files are passed through unchanged. The returned ReadCloser owns r.
func decompressReader(name string, r io.ReadCloser) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("create zstd reader for %s: %w", name, err)
		}
		return &zstdReadCloser{dec: zr, underlying: r}, nil

	case strings.HasSuffix(name, ".gz"):
		gr, err := gzip.NewReader(r)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("create gzip reader for %s: %w", name, err)
		}
		return &gzipReadCloser{gr: gr, underlying: r}, nil

	default:
		return r, nil
	}
}

// zstdReadCloser closes both the decoder and the underlying reader.
type zstdReadCloser struct {
	dec        *zstd.Decoder
	underlying io.ReadCloser
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.underlying.Close()
}

// gzipReadCloser closes both the gzip reader and the underlying reader.
type gzipReadCloser struct {
	gr         *gzip.Reader
	underlying io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.gr.Close()
	if err := g.underlying.Close(); err != nil {
		return err
	}
	return gzErr
}
