package tables

import (
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func load(t *testing.T, records [][]string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		t.Fatalf("load records: %v", df.Err)
	}
	return df
}

func TestStateVaccinations(t *testing.T) {
	df := load(t, [][]string{
		{"state", "date", "people_fully_vaccinated", "people_fully_vaccinated_per_hundred", "daily_vaccinations", "daily_vaccinations_per_million"},
		{"Alabama", "2021-01-12", "7270.000000", "0.150000", "4898", "999"},
	})

	rows, err := StateVaccinations(df)
	if err != nil {
		t.Fatalf("StateVaccinations failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.State != "Alabama" {
		t.Errorf("State = %q", row.State)
	}
	wantDate := time.Date(2021, 1, 12, 0, 0, 0, 0, time.UTC)
	if !row.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", row.Date, wantDate)
	}
	if row.PeopleFullyVaccinated != 7270 {
		t.Errorf("PeopleFullyVaccinated = %v, want 7270", row.PeopleFullyVaccinated)
	}
	if row.PeopleFullyVaccinatedPerHundred != 0.15 {
		t.Errorf("PeopleFullyVaccinatedPerHundred = %v, want 0.15", row.PeopleFullyVaccinatedPerHundred)
	}
	if row.DailyVaccinations != 4898 {
		t.Errorf("DailyVaccinations = %v, want 4898", row.DailyVaccinations)
	}
	if row.DailyVaccinationsPerMillion != 999 {
		t.Errorf("DailyVaccinationsPerMillion = %v, want 999", row.DailyVaccinationsPerMillion)
	}
}

func TestStateVaccinations_BadDate(t *testing.T) {
	df := load(t, [][]string{
		{"state", "date", "people_fully_vaccinated", "people_fully_vaccinated_per_hundred", "daily_vaccinations", "daily_vaccinations_per_million"},
		{"Alabama", "01/12/2021", "0", "0", "0", "0"},
	})

	if _, err := StateVaccinations(df); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestStateVaccinations_MissingColumn(t *testing.T) {
	df := load(t, [][]string{
		{"state", "date"},
		{"Alabama", "2021-01-12"},
	})

	if _, err := StateVaccinations(df); err == nil {
		t.Error("expected error for missing metric columns")
	}
}

func TestUSVaccinations(t *testing.T) {
	df := load(t, [][]string{
		{"date", "people_fully_vaccinated", "people_fully_vaccinated_per_hundred", "daily_vaccinations", "daily_vaccinations_per_million"},
		{"2021-01-12", "782228.000000", "0.240000", "641660", "1933"},
	})

	rows, err := USVaccinations(df)
	if err != nil {
		t.Fatalf("USVaccinations failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].PeopleFullyVaccinated != 782228 {
		t.Errorf("PeopleFullyVaccinated = %v, want 782228", rows[0].PeopleFullyVaccinated)
	}
	if rows[0].DailyVaccinations != 641660 {
		t.Errorf("DailyVaccinations = %v, want 641660", rows[0].DailyVaccinations)
	}
}

func TestStateCasesDeaths(t *testing.T) {
	df := load(t, [][]string{
		{"submission_date", "state", "total_cases", "new_cases", "total_deaths", "new_deaths"},
		{"2021-01-12", "New York", "1500.000000", "15.000000", "150.000000", "6.000000"},
	})

	rows, err := StateCasesDeaths(df)
	if err != nil {
		t.Fatalf("StateCasesDeaths failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.State != "New York" {
		t.Errorf("State = %q", row.State)
	}
	if row.TotalCases != 1500 || row.NewCases != 15 || row.TotalDeaths != 150 || row.NewDeaths != 6 {
		t.Errorf("metrics = %d/%d/%d/%d, want 1500/15/150/6",
			row.TotalCases, row.NewCases, row.TotalDeaths, row.NewDeaths)
	}
}

func TestStateCasesDeaths_RejectsNonFiniteCount(t *testing.T) {
	df := load(t, [][]string{
		{"submission_date", "state", "total_cases", "new_cases", "total_deaths", "new_deaths"},
		{"2021-01-12", "Alabama", "300", "NaN", "30", "1"},
	})

	if _, err := StateCasesDeaths(df); err == nil {
		t.Error("expected error for NaN count, got nil")
	}
}

func TestValueRows(t *testing.T) {
	rows := []StateCasesDeathsRow{
		{
			SubmissionDate: time.Date(2021, 1, 12, 0, 0, 0, 0, time.UTC),
			State:          "Alabama",
			TotalCases:     300,
			NewCases:       3,
			TotalDeaths:    30,
			NewDeaths:      1,
		},
	}

	values := ValueRows(rows)
	if len(values) != 1 {
		t.Fatalf("got %d value rows, want 1", len(values))
	}
	if len(values[0]) != len(StateCasesDeathsColumns) {
		t.Fatalf("value row has %d fields, want %d", len(values[0]), len(StateCasesDeathsColumns))
	}
	if values[0][1] != "Alabama" {
		t.Errorf("state value = %v", values[0][1])
	}
	if values[0][2] != int64(300) {
		t.Errorf("total_cases value = %v", values[0][2])
	}
}

func TestComputeChecksum(t *testing.T) {
	sum := ComputeChecksum([]byte("cleaned table bytes"))
	if len(sum) != len("sha256:")+64 {
		t.Errorf("checksum has unexpected length: %q", sum)
	}
	if !VerifyChecksum([]byte("cleaned table bytes"), sum) {
		t.Error("VerifyChecksum rejected matching data")
	}
	if VerifyChecksum([]byte("other bytes"), sum) {
		t.Error("VerifyChecksum accepted mismatched data")
	}
}
