package transform

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Jurisdiction names involved in the split-reporting fold.
const (
	ParentJurisdiction      = "New York"
	SubordinateJurisdiction = "New York City"
)

// stateCodeCol is the raw jurisdiction code column shared by the case/death
// extract and the cross-reference.
const stateCodeCol = "state"

// stateNameCol is the canonical name column contributed by the
// cross-reference.
const stateNameCol = "state_name"

// caseDeathMetrics lists the raw metric columns in canonical order.
var caseDeathMetrics = []string{
	"tot_cases",
	"new_case",
	"tot_death",
	"new_death",
}

// caseDeathColumns is the column order after dropping everything not in the
// output schema.
var caseDeathColumns = []string{
	"submission_date",
	stateNameCol,
	"tot_cases",
	"new_case",
	"tot_death",
	"new_death",
}

// caseDeathRenames maps raw column names to their canonical output names.
var caseDeathRenames = map[string]string{
	stateNameCol: "state",
	"tot_cases":  "total_cases",
	"new_case":   "new_cases",
	"tot_death":  "total_deaths",
	"new_death":  "new_deaths",
}

// MergeCaseDeaths joins the raw case/death extract with the jurisdiction
// cross-reference, folds the New York City rows into New York, and renames
// columns to the output schema. The provisional/confirmed splits, consent
// flags and submission metadata are dropped; empty metric cells load as zero.
func MergeCaseDeaths(raw, xref dataframe.DataFrame) (dataframe.DataFrame, error) {
	var empty dataframe.DataFrame

	joined := raw.LeftJoin(xref, stateCodeCol)
	if err := frameErr(joined, "join cross-reference"); err != nil {
		return empty, err
	}

	// Selecting the output columns both drops the rest and fixes the order.
	joined = joined.Select(caseDeathColumns)
	joined = toFloat(joined, caseDeathMetrics...)
	joined = fillZero(joined, caseDeathMetrics...)
	if err := frameErr(joined, "trim case/death columns"); err != nil {
		return empty, err
	}

	parent := keepOnly(joined, stateNameCol, ParentJurisdiction)
	city := keepOnly(joined, stateNameCol, SubordinateJurisdiction)
	rest := dropRows(joined, stateNameCol, ParentJurisdiction, SubordinateJurisdiction)

	combined, err := foldSubordinate(parent, city)
	if err != nil {
		return empty, err
	}

	out := rest.Concat(combined)
	for old, canonical := range caseDeathRenames {
		out = out.Rename(canonical, old)
	}
	if err := frameErr(out, "finalize case/death frame"); err != nil {
		return empty, err
	}
	return out, nil
}

// foldSubordinate inner-joins the parent and subordinate subsets on
// submission_date and sums the four metrics pairwise, labeling the result
// with the parent jurisdiction. Dates reported by only one of the two are
// dropped by the inner join, matching the historical output.
func foldSubordinate(parent, city dataframe.DataFrame) (dataframe.DataFrame, error) {
	keep := append([]string{"submission_date"}, caseDeathMetrics...)
	p := parent.Select(keep)
	c := city.Select(keep)
	for _, m := range caseDeathMetrics {
		c = c.Rename("city_"+m, m)
	}

	j := p.InnerJoin(c, "submission_date")
	if err := frameErr(j, "join parent and subordinate rows"); err != nil {
		return dataframe.DataFrame{}, err
	}

	dates := j.Col("submission_date").Records()
	labels := make([]string, len(dates))
	for i := range labels {
		labels[i] = ParentJurisdiction
	}

	cols := []series.Series{
		series.New(dates, series.String, "submission_date"),
		series.New(labels, series.String, stateNameCol),
	}
	for _, m := range caseDeathMetrics {
		pv := j.Col(m).Float()
		cv := j.Col("city_" + m).Float()
		sum := make([]float64, len(pv))
		for i := range pv {
			sum[i] = pv[i] + cv[i]
		}
		cols = append(cols, series.New(sum, series.Float, m))
	}

	combined := dataframe.New(cols...)
	if err := frameErr(combined, "build combined rows"); err != nil {
		return dataframe.DataFrame{}, err
	}
	return combined, nil
}
