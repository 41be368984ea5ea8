// Package table reads typed values out of a ride record frame.
// Every helper returns a fresh slice and never changes the frame.
package table

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// rowColumn carries row positions through GroupBy, which rebuilds every group
// from text and so cannot be trusted with the values themselves.
const rowColumn = "__row"

// Has reports whether df has a column named col.
func Has(df dataframe.DataFrame, col string) bool {
	return slices.Contains(df.Names(), col)
}

// Strings returns the values of col. Missing cells are "".
// An absent column reads as all missing.
func Strings(df dataframe.DataFrame, col string) []string {
	out := make([]string, df.Nrow())
	if !Has(df, col) {
		return out
	}

	s := df.Col(col)
	records := s.Records()
	na := s.IsNaN()
	for i := range out {
		if i < len(na) && na[i] {
			continue
		}
		if i < len(records) {
			out[i] = records[i]
		}
	}
	return out
}

// Floats returns col coerced to numbers. Missing and non-numeric cells are NaN.
func Floats(df dataframe.DataFrame, col string) []float64 {
	raw := Strings(df, col)
	out := make([]float64, len(raw))
	for i, v := range raw {
		f, ok := ParseFloat(v)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}

// Present returns the non-NaN values of xs.
func Present(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// GroupRows partitions the row positions of df by the values of col.
// Rows with a missing col are left out.
func GroupRows(df dataframe.DataFrame, col string) (map[string][]int, error) {
	keys := Strings(df, col)
	present := make([]string, 0, len(keys))
	rows := make([]int, 0, len(keys))
	for i, k := range keys {
		if k == "" {
			continue
		}
		present = append(present, k)
		rows = append(rows, i)
	}

	out := make(map[string][]int)
	if len(present) == 0 {
		return out, nil
	}

	grouped := dataframe.New(
		series.New(present, series.String, col),
		series.New(rows, series.Int, rowColumn),
	).GroupBy(col)
	if grouped.Err != nil {
		return nil, fmt.Errorf("group by %s: %w", col, grouped.Err)
	}

	for key, part := range grouped.GetGroups() {
		idx, err := part.Col(rowColumn).Int()
		if err != nil {
			return nil, fmt.Errorf("group %q of %s: %w", key, col, err)
		}
		out[key] = idx
	}
	return out, nil
}

// Pick returns xs at the given positions.
func Pick(xs []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = xs[r]
	}
	return out
}
