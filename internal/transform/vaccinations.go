// Package transform implements the two cleaning flows as pure functions over
// dataframes, so they can be unit tested without a live database.
package transform

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names as exported by the grapher downloads.
const (
	entityCol = "Entity"
	codeCol   = "Code"
	dayCol    = "Day"
)

// NationalEntity labels the national aggregate rows in the extracts.
const NationalEntity = "United States"

// ExcludedEntities are federal-agency reporting entities whose rows carry
// mostly-missing data already counted in the state rows.
var ExcludedEntities = []string{
	"Bureau of Prisons",
	"Dept of Defense",
	"Federal Entities",
	"Indian Health Svc",
	"Long Term Care",
	"Veterans Health",
}

// VaccinationMetrics lists the four metric columns in canonical order.
var VaccinationMetrics = []string{
	"people_fully_vaccinated",
	"people_fully_vaccinated_per_hundred",
	"daily_vaccinations",
	"daily_vaccinations_per_million",
}

// dailyMetrics are whole counts that must load as integers.
var dailyMetrics = []string{
	"daily_vaccinations",
	"daily_vaccinations_per_million",
}

// stateColumns is the canonical column order of the state output.
var stateColumns = []string{
	"state",
	"date",
	"people_fully_vaccinated",
	"people_fully_vaccinated_per_hundred",
	"daily_vaccinations",
	"daily_vaccinations_per_million",
}

// nationalColumns is the canonical column order of the national output.
var nationalColumns = stateColumns[1:]

// VaccinationExtracts holds the four single-metric extracts, each with
// Entity, Code and Day key columns plus one metric column.
type VaccinationExtracts struct {
	PeopleFullyVaccinated           dataframe.DataFrame
	PeopleFullyVaccinatedPerHundred dataframe.DataFrame
	DailyVaccinations               dataframe.DataFrame
	DailyVaccinationsPerMillion     dataframe.DataFrame
}

// MergeVaccinations joins the four extracts on (Entity, Day), drops the
// federal-agency entities, zero-fills missing metrics, coerces the daily
// counts to integers and splits the result into per-state and national
// frames. The national frame carries no state column.
func MergeVaccinations(ex VaccinationExtracts) (states, national dataframe.DataFrame, err error) {
	var empty dataframe.DataFrame

	frames := []struct {
		df     dataframe.DataFrame
		metric string
	}{
		{ex.PeopleFullyVaccinated, "people_fully_vaccinated"},
		{ex.PeopleFullyVaccinatedPerHundred, "people_fully_vaccinated_per_hundred"},
		{ex.DailyVaccinations, "daily_vaccinations"},
		{ex.DailyVaccinationsPerMillion, "daily_vaccinations_per_million"},
	}

	var joined dataframe.DataFrame
	for i, f := range frames {
		m, err := metricFrame(f.df, f.metric)
		if err != nil {
			return empty, empty, err
		}
		if i == 0 {
			joined = m
			continue
		}
		// Left join keeps every row of the first extract even when a
		// later extract lacks the (Entity, Day) pair.
		joined = joined.LeftJoin(m, entityCol, dayCol)
		if err := frameErr(joined, fmt.Sprintf("join %s", f.metric)); err != nil {
			return empty, empty, err
		}
	}

	joined = dropRows(joined, entityCol, ExcludedEntities...)
	joined = fillZero(joined, VaccinationMetrics...)
	joined = coerceInt(joined, dailyMetrics...)
	joined = joined.
		Rename("state", entityCol).
		Rename("date", dayCol).
		Select(stateColumns)
	if err := frameErr(joined, "clean vaccinations"); err != nil {
		return empty, empty, err
	}

	national = keepOnly(joined, "state", NationalEntity).Select(nationalColumns)
	if err := frameErr(national, "split national rows"); err != nil {
		return empty, empty, err
	}

	states = dropRows(joined, "state", NationalEntity)
	if err := frameErr(states, "split state rows"); err != nil {
		return empty, empty, err
	}

	return states, national, nil
}

// metricFrame drops the redundant Code column, renames the single metric
// column to its canonical name and coerces it to float so later zero fills
// and joins behave uniformly.
func metricFrame(df dataframe.DataFrame, canonical string) (dataframe.DataFrame, error) {
	var metric string
	for _, name := range df.Names() {
		if name == entityCol || name == codeCol || name == dayCol {
			continue
		}
		if metric != "" {
			return dataframe.DataFrame{}, fmt.Errorf("extract for %s has more than one metric column (%s, %s)", canonical, metric, name)
		}
		metric = name
	}
	if metric == "" {
		return dataframe.DataFrame{}, fmt.Errorf("extract for %s has no metric column", canonical)
	}

	out := df.Select([]string{entityCol, dayCol, metric})
	if metric != canonical {
		out = out.Rename(canonical, metric)
	}
	out = out.Mutate(series.New(out.Col(canonical).Float(), series.Float, canonical))
	if err := frameErr(out, fmt.Sprintf("prepare %s extract", canonical)); err != nil {
		return dataframe.DataFrame{}, err
	}
	return out, nil
}
