// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explorer

import (
	_ "embed"
	"html/template"
	"net/url"
	"strconv"

	"github.com/pdiddy/cord-explorer/internal/aggregate"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// previewRow is one line of the preview table.
type previewRow struct {
	Title   string
	Authors string
	Journal string
	Year    string
}

type pageData struct {
	Source   string
	Records  int
	Bounds   *types.YearRange
	Range    *types.YearRange
	Selected int
	Years    template.URL
	Journals template.URL
	Preview  []previewRow
}

func newPageData(sel selection, previewRows int) pageData {
	d := pageData{
		Source:   sel.table.Source,
		Records:  sel.table.Len(),
		Bounds:   sel.bounds,
		Range:    sel.rng,
		Selected: sel.view.Len(),
	}
	if sel.rng != nil {
		q := url.Values{}
		q.Set("min", strconv.Itoa(sel.rng.Min))
		q.Set("max", strconv.Itoa(sel.rng.Max))
		d.Years = template.URL("/charts/years.png?" + q.Encode())
		d.Journals = template.URL("/charts/journals.png?" + q.Encode())
	}
	for _, r := range aggregate.Preview(sel.view, previewRows) {
		row := previewRow{Title: r.Title, Authors: r.Authors, Journal: r.Journal}
		if r.HasYear() {
			row.Year = strconv.Itoa(r.Year)
		}
		d.Preview = append(d.Preview, row)
	}
	return d
}
