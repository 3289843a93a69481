// Package etl orchestrates the pipeline: read inputs, run the two
// transformation flows, write backup artifacts, load and verify.
package etl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/MThorpester/covid-us-etl/internal/backup"
	"github.com/MThorpester/covid-us-etl/internal/config"
	"github.com/MThorpester/covid-us-etl/internal/loader"
	"github.com/MThorpester/covid-us-etl/internal/logging"
	"github.com/MThorpester/covid-us-etl/internal/source"
	"github.com/MThorpester/covid-us-etl/internal/tables"
	"github.com/MThorpester/covid-us-etl/internal/transform"
)

// Version information (set via ldflags)
var (
	Version = "v1.0.0"
	GitSHA  = "unknown"
)

// Pipeline runs the full ETL sequence once. Execution is single-threaded
// and linear; each stage hands its in-memory tables to the next.
type Pipeline struct {
	cfg   config.Config
	src   source.FileSource
	store backup.Store
	db    *loader.Loader
	log   *slog.Logger
}

// New creates a pipeline over the given collaborators.
func New(cfg config.Config, src source.FileSource, store backup.Store, db *loader.Loader) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		src:   src,
		store: store,
		db:    db,
		log:   logging.Component("etl"),
	}
}

// Run executes extract, transform, backup, load and verify in order.
// Any failure aborts the run; the pipeline is re-run manually after fixing
// inputs or truncating target tables.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()

	// Extract
	ex, err := p.readVaccinationExtracts(ctx)
	if err != nil {
		return err
	}
	rawCases, err := p.readFrame(ctx, p.cfg.Inputs.CaseDeaths)
	if err != nil {
		return err
	}
	xref, err := p.readFrame(ctx, p.cfg.Inputs.CrossRef)
	if err != nil {
		return err
	}
	p.log.Info("read inputs",
		"case_death_rows", rawCases.Nrow(),
		"cross_ref_rows", xref.Nrow(),
	)

	// Transform
	states, national, err := transform.MergeVaccinations(ex)
	if err != nil {
		return fmt.Errorf("vaccination merge: %w", err)
	}
	cases, err := transform.MergeCaseDeaths(rawCases, xref)
	if err != nil {
		return fmt.Errorf("case/death merge: %w", err)
	}
	p.log.Info("transformed tables",
		"state_vaccination_rows", states.Nrow(),
		"us_vaccination_rows", national.Nrow(),
		"case_death_rows", cases.Nrow(),
	)

	svRows, err := tables.StateVaccinations(states)
	if err != nil {
		return err
	}
	usRows, err := tables.USVaccinations(national)
	if err != nil {
		return err
	}
	cdRows, err := tables.StateCasesDeaths(cases)
	if err != nil {
		return err
	}

	// Backup artifacts, written before the load so a failed load still
	// leaves inspectable output.
	frames := []struct {
		name string
		df   dataframe.DataFrame
	}{
		{tables.StateVaccinationsTable, states},
		{tables.USVaccinationsTable, national},
		{tables.StateCasesDeathsTable, cases},
	}
	for _, f := range frames {
		name := f.name + ".csv"
		if err := backup.WriteFrameCSV(ctx, p.store, name, f.df); err != nil {
			return err
		}
		p.log.Info("wrote backup", "uri", p.store.URI(name))
	}

	if p.cfg.Backup.Parquet {
		if err := p.writeParquetSnapshots(ctx, svRows, usRows, cdRows); err != nil {
			return err
		}
	}

	// Load and verify
	loads := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{tables.StateVaccinationsTable, tables.StateVaccinationColumns, tables.ValueRows(svRows)},
		{tables.USVaccinationsTable, tables.USVaccinationColumns, tables.ValueRows(usRows)},
		{tables.StateCasesDeathsTable, tables.StateCasesDeathsColumns, tables.ValueRows(cdRows)},
	}
	for _, ld := range loads {
		n, err := p.db.Append(ctx, ld.table, ld.columns, ld.rows)
		if err != nil {
			return err
		}
		if err := p.db.Verify(ctx, ld.table, n); err != nil {
			return err
		}
		logging.TableLogger(ld.table, len(ld.rows)).Info("table loaded")
	}

	p.log.Info("pipeline complete",
		"state_vaccination_rows", len(svRows),
		"us_vaccination_rows", len(usRows),
		"case_death_rows", len(cdRows),
		"duration", time.Since(start).String(),
	)
	return nil
}

// readVaccinationExtracts reads the four single-metric extracts.
func (p *Pipeline) readVaccinationExtracts(ctx context.Context) (transform.VaccinationExtracts, error) {
	var ex transform.VaccinationExtracts
	var err error

	if ex.PeopleFullyVaccinated, err = p.readFrame(ctx, p.cfg.Inputs.PeopleFullyVaccinated); err != nil {
		return ex, err
	}
	if ex.PeopleFullyVaccinatedPerHundred, err = p.readFrame(ctx, p.cfg.Inputs.PeopleFullyVaccinatedPerHundred); err != nil {
		return ex, err
	}
	if ex.DailyVaccinations, err = p.readFrame(ctx, p.cfg.Inputs.DailyVaccinations); err != nil {
		return ex, err
	}
	if ex.DailyVaccinationsPerMillion, err = p.readFrame(ctx, p.cfg.Inputs.DailyVaccinationsPerMillion); err != nil {
		return ex, err
	}
	return ex, nil
}

// readFrame reads one input as strings; the transform layer owns all type
// coercion so parsing behaves the same for every backend.
func (p *Pipeline) readFrame(ctx context.Context, name string) (dataframe.DataFrame, error) {
	return source.ReadFrame(ctx, p.src, name,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

// writeParquetSnapshots writes parquet copies of the three tables.
func (p *Pipeline) writeParquetSnapshots(ctx context.Context, sv []tables.StateVaccinationRow, us []tables.USVaccinationRow, cd []tables.StateCasesDeathsRow) error {
	comp := p.cfg.Backup.Compression

	svData, err := backup.ParquetSnapshot(sv, comp)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", tables.StateVaccinationsTable, err)
	}
	usData, err := backup.ParquetSnapshot(us, comp)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", tables.USVaccinationsTable, err)
	}
	cdData, err := backup.ParquetSnapshot(cd, comp)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", tables.StateCasesDeathsTable, err)
	}

	snapshots := []struct {
		name string
		data []byte
	}{
		{tables.StateVaccinationsTable + ".parquet", svData},
		{tables.USVaccinationsTable + ".parquet", usData},
		{tables.StateCasesDeathsTable + ".parquet", cdData},
	}
	for _, s := range snapshots {
		if err := p.store.WriteFile(ctx, s.name, s.data); err != nil {
			return fmt.Errorf("write %s: %w", s.name, err)
		}
		p.log.Info("wrote parquet snapshot",
			"uri", p.store.URI(s.name),
			"bytes", len(s.data),
			"checksum", tables.ComputeChecksum(s.data),
		)
	}
	return nil
}
