// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart draws the year histogram and the journal ranking as bar
// charts.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// Fixed output names for the batch command.
const (
	YearsFile    = "papers_per_year.png"
	JournalsFile = "top_journals.png"
)

// maxLabel is the longest journal label drawn before truncation.
const maxLabel = 40

var (
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	teal    = color.RGBA{R: 33, G: 145, B: 140, A: 255}
)

// Size is a chart's physical size.
type Size struct {
	Width, Height vg.Length
}

// DefaultSize is 8x5 inches.
var DefaultSize = Size{Width: 8 * vg.Inch, Height: 5 * vg.Inch}

// YearBars plots paper counts per year. An empty histogram yields an empty
// chart titled accordingly.
func YearBars(hist []types.YearCount) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Number of Papers per Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Papers"

	if len(hist) == 0 {
		return noData(p), nil
	}

	values := make(plotter.Values, len(hist))
	labels := make([]string, len(hist))
	for i, yc := range hist {
		values[i] = float64(yc.Count)
		labels[i] = strconv.Itoa(yc.Year)
	}

	bars, err := plotter.NewBarChart(values, barWidth(len(hist), DefaultSize.Width))
	if err != nil {
		return nil, fmt.Errorf("building year bars: %w", err)
	}
	bars.Color = skyBlue
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.Y.Min = 0
	return p, nil
}

// JournalBars plots the journal ranking as horizontal bars with the
// largest count at the top.
func JournalBars(top []types.JournalCount) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Top Journals Publishing COVID-19 Papers"
	p.X.Label.Text = "Number of Papers"
	p.Y.Label.Text = "Journal"

	if len(top) == 0 {
		return noData(p), nil
	}

	// NominalY places index 0 at the bottom, so reverse the ranking.
	n := len(top)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, jc := range top {
		values[n-1-i] = float64(jc.Count)
		labels[n-1-i] = truncate(jc.Journal, maxLabel)
	}

	bars, err := plotter.NewBarChart(values, barWidth(n, DefaultSize.Height))
	if err != nil {
		return nil, fmt.Errorf("building journal bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = teal
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(labels...)
	p.X.Min = 0
	return p, nil
}

// Save writes p to path; the image format follows the file extension.
func Save(p *plot.Plot, path string, size Size) error {
	if err := p.Save(size.Width, size.Height, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}
	return nil
}

// WritePNG renders p as PNG to w.
func WritePNG(w io.Writer, p *plot.Plot, size Size) error {
	wt, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func noData(p *plot.Plot) *plot.Plot {
	p.Title.Text += " (no data)"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p
}

// barWidth spreads n bars over roughly 70% of the available extent.
func barWidth(n int, extent vg.Length) vg.Length {
	w := extent * 0.7 / vg.Length(n+1)
	return max(min(w, vg.Points(40)), vg.Points(2))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
