package tables

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// StateVaccinations converts the cleaned per-state vaccination frame into
// typed rows.
func StateVaccinations(df dataframe.DataFrame) ([]StateVaccinationRow, error) {
	recs := df.Records()
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: empty frame", StateVaccinationsTable)
	}
	idx, err := columnIndex(recs[0], StateVaccinationColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StateVaccinationsTable, err)
	}

	rows := make([]StateVaccinationRow, 0, len(recs)-1)
	for i, rec := range recs[1:] {
		row, err := stateVaccinationRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", StateVaccinationsTable, i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// USVaccinations converts the cleaned national vaccination frame into typed
// rows.
func USVaccinations(df dataframe.DataFrame) ([]USVaccinationRow, error) {
	recs := df.Records()
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: empty frame", USVaccinationsTable)
	}
	idx, err := columnIndex(recs[0], USVaccinationColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", USVaccinationsTable, err)
	}

	rows := make([]USVaccinationRow, 0, len(recs)-1)
	for i, rec := range recs[1:] {
		date, err := parseDate(rec[idx["date"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", USVaccinationsTable, i+1, err)
		}
		pfv, err := parseFloat(rec[idx["people_fully_vaccinated"]], "people_fully_vaccinated")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", USVaccinationsTable, i+1, err)
		}
		pfvPH, err := parseFloat(rec[idx["people_fully_vaccinated_per_hundred"]], "people_fully_vaccinated_per_hundred")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", USVaccinationsTable, i+1, err)
		}
		daily, err := parseCount(rec[idx["daily_vaccinations"]], "daily_vaccinations")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", USVaccinationsTable, i+1, err)
		}
		dailyPM, err := parseCount(rec[idx["daily_vaccinations_per_million"]], "daily_vaccinations_per_million")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", USVaccinationsTable, i+1, err)
		}
		rows = append(rows, USVaccinationRow{
			Date:                            date,
			PeopleFullyVaccinated:           pfv,
			PeopleFullyVaccinatedPerHundred: pfvPH,
			DailyVaccinations:               daily,
			DailyVaccinationsPerMillion:     dailyPM,
		})
	}
	return rows, nil
}

// StateCasesDeaths converts the merged case/death frame into typed rows.
func StateCasesDeaths(df dataframe.DataFrame) ([]StateCasesDeathsRow, error) {
	recs := df.Records()
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: empty frame", StateCasesDeathsTable)
	}
	idx, err := columnIndex(recs[0], StateCasesDeathsColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StateCasesDeathsTable, err)
	}

	rows := make([]StateCasesDeathsRow, 0, len(recs)-1)
	for i, rec := range recs[1:] {
		date, err := parseDate(rec[idx["submission_date"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", StateCasesDeathsTable, i+1, err)
		}
		totalCases, err := parseCount(rec[idx["total_cases"]], "total_cases")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", StateCasesDeathsTable, i+1, err)
		}
		newCases, err := parseCount(rec[idx["new_cases"]], "new_cases")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", StateCasesDeathsTable, i+1, err)
		}
		totalDeaths, err := parseCount(rec[idx["total_deaths"]], "total_deaths")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", StateCasesDeathsTable, i+1, err)
		}
		newDeaths, err := parseCount(rec[idx["new_deaths"]], "new_deaths")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", StateCasesDeathsTable, i+1, err)
		}
		rows = append(rows, StateCasesDeathsRow{
			SubmissionDate: date,
			State:          rec[idx["state"]],
			TotalCases:     totalCases,
			NewCases:       newCases,
			TotalDeaths:    totalDeaths,
			NewDeaths:      newDeaths,
		})
	}
	return rows, nil
}

func stateVaccinationRow(rec []string, idx map[string]int) (StateVaccinationRow, error) {
	date, err := parseDate(rec[idx["date"]])
	if err != nil {
		return StateVaccinationRow{}, err
	}
	pfv, err := parseFloat(rec[idx["people_fully_vaccinated"]], "people_fully_vaccinated")
	if err != nil {
		return StateVaccinationRow{}, err
	}
	pfvPH, err := parseFloat(rec[idx["people_fully_vaccinated_per_hundred"]], "people_fully_vaccinated_per_hundred")
	if err != nil {
		return StateVaccinationRow{}, err
	}
	daily, err := parseCount(rec[idx["daily_vaccinations"]], "daily_vaccinations")
	if err != nil {
		return StateVaccinationRow{}, err
	}
	dailyPM, err := parseCount(rec[idx["daily_vaccinations_per_million"]], "daily_vaccinations_per_million")
	if err != nil {
		return StateVaccinationRow{}, err
	}
	return StateVaccinationRow{
		State:                           rec[idx["state"]],
		Date:                            date,
		PeopleFullyVaccinated:           pfv,
		PeopleFullyVaccinatedPerHundred: pfvPH,
		DailyVaccinations:               daily,
		DailyVaccinationsPerMillion:     dailyPM,
	}, nil
}

// columnIndex maps required column names to their positions in the header.
func columnIndex(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q (have %v)", name, header)
		}
	}
	return idx, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func parseFloat(s, col string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", col, s, err)
	}
	return v, nil
}

// parseCount parses a whole count that may be rendered with a decimal part
// by the frame layer (e.g. "12.000000"). NaN and infinities are rejected:
// converting them to int64 would produce garbage row values.
func parseCount(s, col string) (int64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", col, s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse %s: non-finite value %q", col, s)
	}
	return int64(v), nil
}
