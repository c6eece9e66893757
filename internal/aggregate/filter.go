// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate computes descriptive summaries over cleaned paper
// records: year histograms, journal rankings, title text and word-count
// statistics, plus year-range views over a table.
//
// Every function is a pure read of its input. A cleaned table is never
// modified, so the functions may be called concurrently on the same rows.
package aggregate

import "github.com/pdiddy/cord-explorer/pkg/types"

// Rows is a read-only, indexable sequence of records. *dataset.Table and
// View both satisfy it.
type Rows interface {
	Len() int
	At(i int) *types.Record
}

// View is a subset of another Rows selected by index. It owns no records.
type View struct {
	src Rows
	idx []int
}

// Len returns the number of records in the view.
func (v View) Len() int {
	return len(v.idx)
}

// At returns the i-th record of the view.
func (v View) At(i int) *types.Record {
	return v.src.At(v.idx[i])
}

// FilterByYearRange selects records whose year lies in [minYear, maxYear].
// Records without a year never match. An inverted range yields an empty
// view.
func FilterByYearRange(rows Rows, minYear, maxYear int) View {
	v := View{src: rows}
	if minYear > maxYear {
		return v
	}
	for i := 0; i < rows.Len(); i++ {
		r := rows.At(i)
		if r.HasYear() && r.Year >= minYear && r.Year <= maxYear {
			v.idx = append(v.idx, i)
		}
	}
	return v
}

// YearBounds returns the smallest and largest year present. ok is false
// when no record has a year.
func YearBounds(rows Rows) (minYear, maxYear int, ok bool) {
	for i := 0; i < rows.Len(); i++ {
		r := rows.At(i)
		if !r.HasYear() {
			continue
		}
		if !ok {
			minYear, maxYear, ok = r.Year, r.Year, true
			continue
		}
		minYear = min(minYear, r.Year)
		maxYear = max(maxYear, r.Year)
	}
	return minYear, maxYear, ok
}

// Preview copies the first n records.
func Preview(rows Rows, n int) []types.Record {
	n = min(n, rows.Len())
	if n <= 0 {
		return nil
	}
	out := make([]types.Record, n)
	for i := range out {
		out[i] = *rows.At(i)
	}
	return out
}
