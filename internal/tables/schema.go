// Package tables defines the canonical row types of the three output tables
// and the conversion from cleaned dataframes into typed rows.
package tables

import (
	"time"
)

// Output table names in the target schema.
const (
	StateVaccinationsTable = "state_vaccinations"
	USVaccinationsTable    = "us_vaccinations"
	StateCasesDeathsTable  = "state_cases_deaths"
)

// DateLayout is the date format used across all input extracts.
const DateLayout = "2006-01-02"

// StateVaccinationRow is one (state, date) vaccination record.
type StateVaccinationRow struct {
	State                           string    `parquet:"state"`
	Date                            time.Time `parquet:"date,timestamp(millisecond)"`
	PeopleFullyVaccinated           float64   `parquet:"people_fully_vaccinated"`
	PeopleFullyVaccinatedPerHundred float64   `parquet:"people_fully_vaccinated_per_hundred"`
	DailyVaccinations               int64     `parquet:"daily_vaccinations"`
	DailyVaccinationsPerMillion     int64     `parquet:"daily_vaccinations_per_million"`
}

// USVaccinationRow is one national aggregate vaccination record. It carries
// no jurisdiction column; the table holds only "United States" data.
type USVaccinationRow struct {
	Date                            time.Time `parquet:"date,timestamp(millisecond)"`
	PeopleFullyVaccinated           float64   `parquet:"people_fully_vaccinated"`
	PeopleFullyVaccinatedPerHundred float64   `parquet:"people_fully_vaccinated_per_hundred"`
	DailyVaccinations               int64     `parquet:"daily_vaccinations"`
	DailyVaccinationsPerMillion     int64     `parquet:"daily_vaccinations_per_million"`
}

// StateCasesDeathsRow is one (submission_date, state) case/death record.
type StateCasesDeathsRow struct {
	SubmissionDate time.Time `parquet:"submission_date,timestamp(millisecond)"`
	State          string    `parquet:"state"`
	TotalCases     int64     `parquet:"total_cases"`
	NewCases       int64     `parquet:"new_cases"`
	TotalDeaths    int64     `parquet:"total_deaths"`
	NewDeaths      int64     `parquet:"new_deaths"`
}

// Column orders as provisioned in the target schema.
var (
	StateVaccinationColumns = []string{
		"state",
		"date",
		"people_fully_vaccinated",
		"people_fully_vaccinated_per_hundred",
		"daily_vaccinations",
		"daily_vaccinations_per_million",
	}

	USVaccinationColumns = StateVaccinationColumns[1:]

	StateCasesDeathsColumns = []string{
		"submission_date",
		"state",
		"total_cases",
		"new_cases",
		"total_deaths",
		"new_deaths",
	}
)
