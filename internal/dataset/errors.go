// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn reports a header without one of the required columns.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptySource reports a source with no header row.
	ErrEmptySource = errors.New("no header row")
)

// DataSourceError reports that a source could not be opened or read as a
// table at all. Problems with individual rows never produce one.
type DataSourceError struct {
	// Source is the path or URL that was being loaded.
	Source string

	// Op is the step that failed: "open", "fetch", "stat" or "parse".
	Op string

	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func sourceErr(source, op string, err error) error {
	return &DataSourceError{Source: source, Op: op, Err: err}
}
