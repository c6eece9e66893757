// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explorer

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"go.uber.org/zap"
	"gonum.org/v1/plot"

	"github.com/pdiddy/cord-explorer/internal/aggregate"
	"github.com/pdiddy/cord-explorer/internal/chart"
	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

// selection is a filtered view of the table together with the year bounds
// it was chosen from.
type selection struct {
	table  *dataset.Table
	bounds *types.YearRange // nil when no record has a year
	rng    *types.YearRange // nil when bounds is nil
	view   aggregate.View
}

// summary computes the aggregates of the selected records.
func (sel selection) summary(topN, previewRows int) types.Summary {
	s := aggregate.Summarize(sel.table.Source, sel.view, topN, previewRows)
	s.Selection = sel.rng
	return s
}

// selectRange resolves the min and max query parameters against the table.
// Absent parameters fall back to the configured default range; all values
// are clamped to the observed years.
func (s *Server) selectRange(r *http.Request, tbl *dataset.Table) (selection, error) {
	q := r.URL.Query()
	minParam, err := yearParam(q.Get("min"), "min")
	if err != nil {
		return selection{}, err
	}
	maxParam, err := yearParam(q.Get("max"), "max")
	if err != nil {
		return selection{}, err
	}

	sel := selection{table: tbl}
	lo, hi, ok := aggregate.YearBounds(tbl)
	if !ok {
		sel.view = aggregate.FilterByYearRange(tbl, 1, 0)
		return sel, nil
	}
	sel.bounds = &types.YearRange{Min: lo, Max: hi}

	rng := defaultRange(s.cfg.DefaultRange, lo, hi)
	if minParam != nil {
		rng.Min = clamp(*minParam, lo, hi)
	}
	if maxParam != nil {
		rng.Max = clamp(*maxParam, lo, hi)
	}
	if rng.Min > rng.Max {
		return selection{}, fmt.Errorf("min year %d is after max year %d", rng.Min, rng.Max)
	}
	sel.rng = &rng
	sel.view = aggregate.FilterByYearRange(tbl, rng.Min, rng.Max)
	return sel, nil
}

func yearParam(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a year", name, raw)
	}
	return &y, nil
}

// defaultRange clamps def to [lo, hi]. A zero range selects everything.
func defaultRange(def types.YearRange, lo, hi int) types.YearRange {
	if def.Min == 0 && def.Max == 0 {
		return types.YearRange{Min: lo, Max: hi}
	}
	return types.YearRange{Min: clamp(def.Min, lo, hi), Max: clamp(def.Max, lo, hi)}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// load fetches the table and the requested selection, writing an error
// response and returning ok=false on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (selection, bool) {
	tbl, err := s.table(r.Context())
	if err != nil {
		s.logger.Error("loading dataset", zap.Error(err))
		render.Render(w, r, errorFor(err))
		return selection{}, false
	}
	sel, err := s.selectRange(r, tbl)
	if err != nil {
		render.Render(w, r, ErrBadRequest(err))
		return selection{}, false
	}
	return sel, true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.load(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, sel.summary(s.cfg.TopN, s.cfg.PreviewRows))
}

func (s *Server) handleYearsChart(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.load(w, r)
	if !ok {
		return
	}
	p, err := chart.YearBars(aggregate.CountByYear(sel.view))
	s.writeChart(w, r, p, err)
}

func (s *Server) handleJournalsChart(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.load(w, r)
	if !ok {
		return
	}
	p, err := chart.JournalBars(aggregate.TopJournals(sel.view, s.cfg.TopN))
	s.writeChart(w, r, p, err)
}

// writeChart renders into a buffer first so a failed render still gets a
// proper error status.
func (s *Server) writeChart(w http.ResponseWriter, r *http.Request, p *plot.Plot, err error) {
	var buf bytes.Buffer
	if err == nil {
		err = chart.WritePNG(&buf, p, chart.DefaultSize)
	}
	if err != nil {
		s.logger.Error("rendering chart", zap.String("path", r.URL.Path), zap.Error(err))
		render.Render(w, r, ErrInternal(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// reloadResponse reports the table loaded by a reload.
type reloadResponse struct {
	Source string        `json:"source"`
	Stats  dataset.Stats `json:"stats"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.tables.Invalidate(s.cfg.Data)
	tbl, err := s.Warm(r.Context())
	if err != nil {
		s.logger.Error("reloading dataset", zap.Error(err))
		render.Render(w, r, errorFor(err))
		return
	}
	render.JSON(w, r, reloadResponse{Source: tbl.Source, Stats: tbl.Stats})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	tbl, err := s.table(r.Context())
	if err != nil {
		s.logger.Error("loading dataset", zap.Error(err))
		status := http.StatusInternalServerError
		var dse *dataset.DataSourceError
		if errors.As(err, &dse) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}
	sel, err := s.selectRange(r, tbl)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPageData(sel, s.cfg.PreviewRows)); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
