package tables

// Values flattens rows into the positional form pgx CopyFrom expects,
// matching StateVaccinationColumns.
func (r StateVaccinationRow) Values() []any {
	return []any{
		r.State,
		r.Date,
		r.PeopleFullyVaccinated,
		r.PeopleFullyVaccinatedPerHundred,
		r.DailyVaccinations,
		r.DailyVaccinationsPerMillion,
	}
}

// Values matches USVaccinationColumns.
func (r USVaccinationRow) Values() []any {
	return []any{
		r.Date,
		r.PeopleFullyVaccinated,
		r.PeopleFullyVaccinatedPerHundred,
		r.DailyVaccinations,
		r.DailyVaccinationsPerMillion,
	}
}

// Values matches StateCasesDeathsColumns.
func (r StateCasesDeathsRow) Values() []any {
	return []any{
		r.SubmissionDate,
		r.State,
		r.TotalCases,
		r.NewCases,
		r.TotalDeaths,
		r.NewDeaths,
	}
}

// ValueRows flattens a slice of rows for CopyFrom.
func ValueRows[T interface{ Values() []any }](rows []T) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = r.Values()
	}
	return out
}
