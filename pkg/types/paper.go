// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Column names that a metadata file must carry in its header row.
const (
	ColumnTitle       = "title"
	ColumnAbstract    = "abstract"
	ColumnPublishTime = "publish_time"
	ColumnAuthors     = "authors"
	ColumnJournal     = "journal"
)

// RequiredColumns lists the header columns checked at load time, in the
// order they are reported when missing.
var RequiredColumns = []string{
	ColumnTitle,
	ColumnAbstract,
	ColumnPublishTime,
	ColumnAuthors,
	ColumnJournal,
}

// Record is one cleaned paper row. Title and Abstract are always non-empty.
type Record struct {
	// Row is the 1-based data row number in the source file (header excluded).
	Row int `json:"row" yaml:"row"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors is the raw author list as it appears in the source.
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Journal is the journal name; empty when the source had none.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// RawPublishTime is the publish_time cell before parsing.
	RawPublishTime string `json:"raw_publish_time" yaml:"raw_publish_time"`

	// PublishTime is the parsed publication date. The zero value means the
	// raw value could not be parsed.
	PublishTime time.Time `json:"publish_time,omitzero" yaml:"publish_time,omitempty"`

	// Year is the calendar year of PublishTime, or 0 when it did not parse.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// AbstractWordCount is the number of whitespace-separated tokens in Abstract.
	AbstractWordCount int `json:"abstract_word_count" yaml:"abstract_word_count"`
}

// HasYear reports whether the record's publish time parsed to a year.
func (r Record) HasYear() bool {
	return r.Year != 0
}
