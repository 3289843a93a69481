package source

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
)

// ReadFrame opens the named file and parses it into a dataframe. A missing
// or malformed input is fatal to the run, so errors are returned verbatim
// for the pipeline to abort on.
func ReadFrame(ctx context.Context, src FileSource, name string, opts ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	r, err := src.Open(ctx, name)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer r.Close()

	df := dataframe.ReadCSV(r, opts...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse %s: %w", src.Location(name), df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("input %s has no data rows", src.Location(name))
	}
	return df, nil
}
