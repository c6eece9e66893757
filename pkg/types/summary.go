// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// YearCount is one bucket of the year histogram.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// JournalCount is one entry of the top journals ranking.
type JournalCount struct {
	Journal string `json:"journal" yaml:"journal"`
	Count   int    `json:"count" yaml:"count"`
}

// WordStats describes the distribution of abstract word counts.
type WordStats struct {
	Min    int     `json:"min" yaml:"min"`
	Max    int     `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
}

// YearRange is an inclusive range of publication years.
type YearRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Summary bundles every aggregate computed over a table or a filtered view.
type Summary struct {
	// Source names the dataset the summary was computed from.
	Source string `json:"source" yaml:"source"`

	// Records is the number of rows the aggregates were computed over.
	Records int `json:"records" yaml:"records"`

	// Selection is the year window applied, if any.
	Selection *YearRange `json:"selection,omitempty" yaml:"selection,omitempty"`

	// Observed is the min/max year present in the rows; nil when no row has a year.
	Observed *YearRange `json:"observed,omitempty" yaml:"observed,omitempty"`

	Years         []YearCount    `json:"years" yaml:"years"`
	TopJournals   []JournalCount `json:"top_journals" yaml:"top_journals"`
	AbstractWords WordStats      `json:"abstract_words" yaml:"abstract_words"`
	Preview       []Record       `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// TotalYearCount returns the sum of all histogram buckets.
func (s Summary) TotalYearCount() int {
	n := 0
	for _, y := range s.Years {
		n += y.Count
	}
	return n
}
