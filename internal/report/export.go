// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes aggregate summaries as YAML, JSON or an Excel
// workbook.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// Format selects the text encoding for Write.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Write encodes s to w in the given format.
func Write(w io.Writer, s types.Summary, format Format) error {
	switch format {
	case FormatYAML, "":
		return WriteYAML(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// WriteYAML encodes s as a YAML document.
func WriteYAML(w io.Writer, s types.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes s as indented JSON.
func WriteJSON(w io.Writer, s types.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
