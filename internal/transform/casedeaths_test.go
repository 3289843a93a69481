package transform

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var caseDeathHeader = []string{
	"submission_date", "state",
	"tot_cases", "conf_cases", "prob_cases", "new_case", "pnew_case",
	"tot_death", "conf_death", "prob_death", "new_death", "pnew_death",
	"created_at", "consent_cases", "consent_deaths",
}

func loadStrings(t *testing.T, records [][]string) dataframe.DataFrame {
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

func testCaseDeaths(t *testing.T) (raw, xref dataframe.DataFrame) {
	t.Helper()
	raw = loadStrings(t, [][]string{
		caseDeathHeader,
		{"2021-01-12", "NY", "1000", "900", "100", "10", "1", "100", "90", "10", "4", "0", "2021-01-13", "Agree", "Agree"},
		{"2021-01-12", "NYC", "500", "450", "50", "5", "0", "50", "45", "5", "2", "0", "2021-01-13", "Agree", "Agree"},
		{"2021-01-12", "AL", "300", "280", "20", "3", "0", "30", "28", "2", "1", "0", "2021-01-13", "Agree", "Agree"},
		// NYC reported 2021-01-13 but NY did not: inner-join semantics
		// drop this date from the combined rows.
		{"2021-01-13", "NYC", "600", "540", "60", "6", "0", "60", "54", "6", "3", "0", "2021-01-14", "Agree", "Agree"},
		{"2021-01-13", "AL", "310", "290", "20", "10", "0", "31", "29", "2", "1", "0", "2021-01-14", "Agree", "Agree"},
	})
	xref = loadStrings(t, [][]string{
		{"state", "state_name"},
		{"NY", "New York"},
		{"NYC", "New York City"},
		{"AL", "Alabama"},
	})
	return raw, xref
}

func TestMergeCaseDeaths_FoldsSubordinateIntoParent(t *testing.T) {
	raw, xref := testCaseDeaths(t)
	out, err := MergeCaseDeaths(raw, xref)
	if err != nil {
		t.Fatalf("MergeCaseDeaths failed: %v", err)
	}

	ny := filterState(out, ParentJurisdiction)
	if ny.Nrow() != 1 {
		t.Fatalf("expected 1 New York row, got %d", ny.Nrow())
	}

	want := map[string]float64{
		"total_cases":  1500, // 1000 + 500
		"new_cases":    15,   // 10 + 5
		"total_deaths": 150,  // 100 + 50
		"new_deaths":   6,    // 4 + 2
	}
	for col, w := range want {
		if got := ny.Col(col).Float()[0]; got != w {
			t.Errorf("New York %s = %v, want %v", col, got, w)
		}
	}
}

func TestMergeCaseDeaths_NoSubordinateRowsRemain(t *testing.T) {
	raw, xref := testCaseDeaths(t)
	out, err := MergeCaseDeaths(raw, xref)
	if err != nil {
		t.Fatalf("MergeCaseDeaths failed: %v", err)
	}

	if got := filterState(out, SubordinateJurisdiction).Nrow(); got != 0 {
		t.Errorf("output contains %d New York City rows, want 0", got)
	}
}

func TestMergeCaseDeaths_DropsUnmatchedDates(t *testing.T) {
	raw, xref := testCaseDeaths(t)
	out, err := MergeCaseDeaths(raw, xref)
	if err != nil {
		t.Fatalf("MergeCaseDeaths failed: %v", err)
	}

	ny := filterState(out, ParentJurisdiction)
	for _, date := range ny.Col("submission_date").Records() {
		if date == "2021-01-13" {
			t.Error("2021-01-13 has no parent row and must be dropped by the inner join")
		}
	}

	// Unrelated jurisdictions keep all their dates.
	if got := filterState(out, "Alabama").Nrow(); got != 2 {
		t.Errorf("Alabama has %d rows, want 2", got)
	}
}

func TestMergeCaseDeaths_FillsMissingWithZero(t *testing.T) {
	raw := loadStrings(t, [][]string{
		caseDeathHeader,
		// Alabama reported no case counts at all for this date.
		{"2021-01-12", "AL", "", "", "", "", "", "", "", "", "", "", "2021-01-13", "N/A", "N/A"},
		{"2021-01-12", "AK", "200", "180", "20", "2", "0", "20", "18", "2", "1", "0", "2021-01-13", "Agree", "Agree"},
	})
	xref := loadStrings(t, [][]string{
		{"state", "state_name"},
		{"AL", "Alabama"},
		{"AK", "Alaska"},
	})

	out, err := MergeCaseDeaths(raw, xref)
	if err != nil {
		t.Fatalf("MergeCaseDeaths failed: %v", err)
	}

	ala := filterState(out, "Alabama")
	if ala.Nrow() != 1 {
		t.Fatalf("expected 1 Alabama row, got %d", ala.Nrow())
	}
	for _, col := range []string{"total_cases", "new_cases", "total_deaths", "new_deaths"} {
		if got := ala.Col(col).Float()[0]; got != 0 {
			t.Errorf("Alabama %s = %v, want 0 after fill", col, got)
		}
	}
}

func TestMergeCaseDeaths_ColumnsAndNames(t *testing.T) {
	raw, xref := testCaseDeaths(t)
	out, err := MergeCaseDeaths(raw, xref)
	if err != nil {
		t.Fatalf("MergeCaseDeaths failed: %v", err)
	}

	wantCols := []string{
		"submission_date",
		"state",
		"total_cases",
		"new_cases",
		"total_deaths",
		"new_deaths",
	}
	gotCols := out.Names()
	if len(gotCols) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", gotCols, wantCols)
	}
	for i := range wantCols {
		if gotCols[i] != wantCols[i] {
			t.Errorf("column %d = %q, want %q", i, gotCols[i], wantCols[i])
		}
	}

	// Total rows: 2 Alabama + 1 combined New York.
	if out.Nrow() != 3 {
		t.Errorf("output has %d rows, want 3", out.Nrow())
	}
}
