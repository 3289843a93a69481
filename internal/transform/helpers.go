package transform

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// fillZero replaces missing values in the named float columns with zero.
// Left joins leave nulls where an extract had no matching row.
func fillZero(df dataframe.DataFrame, cols ...string) dataframe.DataFrame {
	for _, name := range cols {
		vals := df.Col(name).Float()
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = 0
			}
		}
		df = df.Mutate(series.New(vals, series.Float, name))
	}
	return df
}

// coerceInt converts the named columns to integer series. The zero fill
// leaves whole counts represented as floats, which would otherwise load as
// decimals.
func coerceInt(df dataframe.DataFrame, cols ...string) dataframe.DataFrame {
	for _, name := range cols {
		vals := df.Col(name).Float()
		ints := make([]int, len(vals))
		for i, v := range vals {
			ints[i] = int(v)
		}
		df = df.Mutate(series.New(ints, series.Int, name))
	}
	return df
}

// toFloat coerces the named columns to float series without filling
// missing values.
func toFloat(df dataframe.DataFrame, cols ...string) dataframe.DataFrame {
	for _, name := range cols {
		df = df.Mutate(series.New(df.Col(name).Float(), series.Float, name))
	}
	return df
}

// keepOnly filters the frame to rows whose column equals value.
func keepOnly(df dataframe.DataFrame, col, value string) dataframe.DataFrame {
	return df.Filter(dataframe.F{
		Colname:    col,
		Comparator: series.Eq,
		Comparando: value,
	})
}

// dropRows filters out rows whose column equals any of the given values.
func dropRows(df dataframe.DataFrame, col string, values ...string) dataframe.DataFrame {
	for _, value := range values {
		df = df.Filter(dataframe.F{
			Colname:    col,
			Comparator: series.Neq,
			Comparando: value,
		})
	}
	return df
}

// frameErr surfaces a deferred gota error with context.
func frameErr(df dataframe.DataFrame, step string) error {
	if df.Err != nil {
		return fmt.Errorf("%s: %w", step, df.Err)
	}
	return nil
}
