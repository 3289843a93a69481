package backup

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
)

// ParquetSnapshot encodes rows as a parquet file with the given compression
// ("snappy" or "zstd").
func ParquetSnapshot[T any](rows []T, compression string) ([]byte, error) {
	codec, err := parquetCodec(compression)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[T](&buf, parquet.Compression(codec))
	if _, err := w.Write(rows); err != nil {
		return nil, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

func parquetCodec(compression string) (compress.Codec, error) {
	switch compression {
	case "", "snappy":
		return &parquet.Snappy, nil
	case "zstd":
		return &parquet.Zstd, nil
	default:
		return nil, fmt.Errorf("unknown parquet compression: %s", compression)
	}
}
