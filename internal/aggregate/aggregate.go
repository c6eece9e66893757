// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"slices"
	"sort"
	"strings"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// DefaultTopN is the journal ranking length used when n <= 0.
const DefaultTopN = 10

// CountByYear counts records per publication year, ascending by year.
// Records without a year are not counted.
func CountByYear(rows Rows) []types.YearCount {
	counts := make(map[int]int)
	for i := 0; i < rows.Len(); i++ {
		if r := rows.At(i); r.HasYear() {
			counts[r.Year]++
		}
	}

	out := make([]types.YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, types.YearCount{Year: year, Count: n})
	}
	slices.SortFunc(out, func(a, b types.YearCount) int { return a.Year - b.Year })
	return out
}

// TopJournals ranks journals by record count, largest first, and returns at
// most n entries. Records without a journal are not ranked. Journals with
// equal counts keep the order in which they were first seen.
func TopJournals(rows Rows, n int) []types.JournalCount {
	if n <= 0 {
		n = DefaultTopN
	}

	index := make(map[string]int)
	var out []types.JournalCount
	for i := 0; i < rows.Len(); i++ {
		j := rows.At(i).Journal
		if j == "" {
			continue
		}
		if k, ok := index[j]; ok {
			out[k].Count++
			continue
		}
		index[j] = len(out)
		out = append(out, types.JournalCount{Journal: j, Count: 1})
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	if len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []types.JournalCount{}
	}
	return out
}

// TitleCorpus joins every non-empty title with a single space, in order.
func TitleCorpus(rows Rows) string {
	var b strings.Builder
	for i := 0; i < rows.Len(); i++ {
		title := rows.At(i).Title
		if title == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(title)
	}
	return b.String()
}

// AbstractWords describes the distribution of abstract word counts. It
// returns the zero value for empty rows.
func AbstractWords(rows Rows) types.WordStats {
	n := rows.Len()
	if n == 0 {
		return types.WordStats{}
	}

	counts := make([]int, n)
	total := 0
	for i := range counts {
		counts[i] = rows.At(i).AbstractWordCount
		total += counts[i]
	}
	slices.Sort(counts)

	median := float64(counts[n/2])
	if n%2 == 0 {
		median = float64(counts[n/2-1]+counts[n/2]) / 2
	}
	return types.WordStats{
		Min:    counts[0],
		Max:    counts[n-1],
		Mean:   float64(total) / float64(n),
		Median: median,
	}
}

// Summarize computes every aggregate over rows. previewRows caps the
// number of records copied into Preview.
func Summarize(source string, rows Rows, topN, previewRows int) types.Summary {
	s := types.Summary{
		Source:        source,
		Records:       rows.Len(),
		Years:         CountByYear(rows),
		TopJournals:   TopJournals(rows, topN),
		AbstractWords: AbstractWords(rows),
		Preview:       Preview(rows, previewRows),
	}
	if lo, hi, ok := YearBounds(rows); ok {
		s.Observed = &types.YearRange{Min: lo, Max: hi}
	}
	return s
}
