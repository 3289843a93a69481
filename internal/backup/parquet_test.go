package backup

import (
	"bytes"
	"testing"
	"time"

	"github.com/MThorpester/covid-us-etl/internal/tables"
)

func TestParquetSnapshot(t *testing.T) {
	rows := []tables.USVaccinationRow{
		{
			Date:                            time.Date(2021, 1, 12, 0, 0, 0, 0, time.UTC),
			PeopleFullyVaccinated:           782228,
			PeopleFullyVaccinatedPerHundred: 0.24,
			DailyVaccinations:               641660,
			DailyVaccinationsPerMillion:     1933,
		},
	}

	for _, comp := range []string{"snappy", "zstd"} {
		data, err := ParquetSnapshot(rows, comp)
		if err != nil {
			t.Fatalf("ParquetSnapshot(%s) failed: %v", comp, err)
		}
		if !bytes.HasPrefix(data, []byte("PAR1")) {
			t.Errorf("%s snapshot is not a parquet file", comp)
		}
	}
}

func TestParquetSnapshotUnknownCompression(t *testing.T) {
	if _, err := ParquetSnapshot([]tables.USVaccinationRow{}, "lzma"); err == nil {
		t.Error("expected error for unknown compression")
	}
}
