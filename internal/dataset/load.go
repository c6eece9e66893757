// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads a paper metadata CSV into a cleaned, immutable Table.
//
// Cleaning drops rows without a title, abstract or publish time, parses the
// publish time best-effort, and derives the publication year and the
// abstract word count. Only failures to read the source as a whole are
// returned as errors; row-level problems are absorbed.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cord-explorer/internal/httputil"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

// naTokens are cell values treated as missing, in addition to the empty
// string. They match the default NA markers of common CSV readers.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// Options controls how sources are fetched.
type Options struct {
	// Client is used for http(s) sources. Nil uses http.DefaultClient.
	Client *http.Client

	// HTTP holds the user agent and retry settings for URL sources.
	HTTP types.HTTPConfig
}

// Stats describes what cleaning did to the raw rows.
type Stats struct {
	RawRows        int `json:"raw_rows" yaml:"raw_rows"`
	Columns        int `json:"columns" yaml:"columns"`
	Kept           int `json:"kept" yaml:"kept"`
	Dropped        int `json:"dropped" yaml:"dropped"`
	UnparsedDates  int `json:"unparsed_dates" yaml:"unparsed_dates"`
	MissingJournal int `json:"missing_journal" yaml:"missing_journal"`
}

// Table is a cleaned dataset. Records keep the source file order and must
// not be modified after Load returns.
type Table struct {
	Source  string
	Records []types.Record
	Stats   Stats
}

// Len returns the number of cleaned records.
func (t *Table) Len() int {
	return len(t.Records)
}

// At returns the i-th record.
func (t *Table) At(i int) *types.Record {
	return &t.Records[i]
}

// Load reads and cleans the dataset at source, which is either a local
// file path or an http(s) URL. Failures to open or parse the source are
// returned as *DataSourceError.
func Load(ctx context.Context, source string, opts Options) (*Table, error) {
	rc, err := open(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadTable(rc, source)
}

func open(ctx context.Context, source string, opts Options) (io.ReadCloser, error) {
	if isURL(source) {
		body, err := httputil.Get(ctx, opts.Client, source, opts.HTTP.UserAgent, opts.HTTP.MaxRetries)
		if err != nil {
			return nil, sourceErr(source, "fetch", err)
		}
		return body, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, sourceErr(source, "open", err)
	}
	return f, nil
}

// Identify returns a key that changes whenever the content behind source
// may have changed: the absolute path, size and modification time for a
// file, or the URL itself.
func Identify(source string) (string, error) {
	if isURL(source) {
		return source, nil
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", sourceErr(source, "stat", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", sourceErr(source, "stat", err)
	}
	if info.IsDir() {
		return "", sourceErr(source, "stat", fmt.Errorf("%s is a directory", abs))
	}
	return fmt.Sprintf("%s@%d:%d", abs, info.Size(), info.ModTime().UnixNano()), nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ReadTable cleans CSV data from r. name identifies the source in errors
// and in the returned Table.
func ReadTable(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, sourceErr(name, "parse", ErrEmptySource)
		}
		return nil, sourceErr(name, "parse", fmt.Errorf("reading header: %w", err))
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, sourceErr(name, "parse", err)
	}

	t := &Table{Source: name}
	t.Stats.Columns = len(header)

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, sourceErr(name, "parse", err)
		}
		t.Stats.RawRows++

		rec, ok := cleanRow(row, cols)
		if !ok {
			t.Stats.Dropped++
			continue
		}
		rec.Row = t.Stats.RawRows
		if !rec.HasYear() {
			t.Stats.UnparsedDates++
		}
		if rec.Journal == "" {
			t.Stats.MissingJournal++
		}
		t.Records = append(t.Records, rec)
	}

	t.Stats.Kept = len(t.Records)
	return t, nil
}

// columns holds the header index of each required field.
type columns struct {
	title, abstract, publishTime, authors, journal int
}

func resolveColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	pos := make(map[string]int, len(types.RequiredColumns))
	for _, name := range types.RequiredColumns {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		pos[name] = i
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	c := columns{
		title:       pos[types.ColumnTitle],
		abstract:    pos[types.ColumnAbstract],
		publishTime: pos[types.ColumnPublishTime],
		authors:     pos[types.ColumnAuthors],
		journal:     pos[types.ColumnJournal],
	}
	return c, nil
}

// cleanRow applies the completeness filter and derives the computed fields.
// It reports false when the row must be dropped.
func cleanRow(row []string, c columns) (types.Record, bool) {
	title, ok := cell(row, c.title)
	if !ok {
		return types.Record{}, false
	}
	abstract, ok := cell(row, c.abstract)
	if !ok {
		return types.Record{}, false
	}
	rawTime, ok := cell(row, c.publishTime)
	if !ok {
		return types.Record{}, false
	}
	authors, _ := cell(row, c.authors)
	journal, _ := cell(row, c.journal)

	rec := types.Record{
		Title:             title,
		Abstract:          abstract,
		Authors:           authors,
		Journal:           journal,
		RawPublishTime:    rawTime,
		AbstractWordCount: len(strings.Fields(abstract)),
	}
	if t, ok := ParseDate(rawTime); ok {
		rec.PublishTime = t
		rec.Year = t.Year()
	}
	return rec, true
}

// cell returns the value at i, or false when it is absent, empty or an NA
// marker. The value is cloned so a kept record does not pin the whole line.
func cell(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	v := row[i]
	if v == "" {
		return "", false
	}
	if _, na := naTokens[strings.TrimSpace(v)]; na {
		return "", false
	}
	return strings.Clone(v), true
}
