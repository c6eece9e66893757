// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// Sheet names in the summary workbook.
const (
	SheetYears    = "Years"
	SheetJournals = "Journals"
	SheetPreview  = "Preview"
)

// WriteWorkbook saves s as an .xlsx file with one sheet per aggregate.
func WriteWorkbook(path string, s types.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetYears); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	for _, name := range []string{SheetJournals, SheetPreview} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	years := [][]any{{"Year", "Papers"}}
	for _, yc := range s.Years {
		years = append(years, []any{yc.Year, yc.Count})
	}

	journals := [][]any{{"Journal", "Papers"}}
	for _, jc := range s.TopJournals {
		journals = append(journals, []any{jc.Journal, jc.Count})
	}

	preview := [][]any{{"Title", "Authors", "Journal", "Year"}}
	for _, r := range s.Preview {
		var year any
		if r.HasYear() {
			year = r.Year
		}
		preview = append(preview, []any{r.Title, r.Authors, r.Journal, year})
	}

	for sheet, rows := range map[string][][]any{
		SheetYears:    years,
		SheetJournals: journals,
		SheetPreview:  preview,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
