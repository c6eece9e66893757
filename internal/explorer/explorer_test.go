package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

const papersCSV = `title,abstract,publish_time,authors,journal
A,alpha beta,2019-05-01,Smith,J1
B,gamma,2020-01-01,Jones,J1
C,delta epsilon,2020-06-15,,J2
D,zeta,2021,Lee,J1
E,eta theta iota,2022-02-02,Kim,J3
`

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(ctx context.Context, source string) (*dataset.Table, error) {
	return dataset.Load(ctx, source, dataset.Options{})
}

func newTestServer(t *testing.T, data string) *Server {
	t.Helper()
	return New(types.ExplorerConfig{
		Data:         data,
		Addr:         "127.0.0.1:0",
		TopN:         10,
		PreviewRows:  10,
		DefaultRange: types.YearRange{Min: 2020, Max: 2021},
	}, load, nil)
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeSummary(t *testing.T, rec *httptest.ResponseRecorder) types.Summary {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var s types.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func TestSummary_Selection(t *testing.T) {
	s := newTestServer(t, writeData(t, papersCSV))

	tests := []struct {
		name    string
		query   string
		want    types.YearRange
		records int
	}{
		{"default range", "", types.YearRange{Min: 2020, Max: 2021}, 3},
		{"single year", "?min=2019&max=2019", types.YearRange{Min: 2019, Max: 2019}, 1},
		{"only min", "?min=2021", types.YearRange{Min: 2021, Max: 2021}, 1},
		{"clamped to observed years", "?min=1900&max=3000", types.YearRange{Min: 2019, Max: 2022}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeSummary(t, do(t, s, http.MethodGet, "/api/summary"+tt.query))
			require.NotNil(t, got.Selection)
			assert.Equal(t, tt.want, *got.Selection)
			assert.Equal(t, tt.records, got.Records)
			assert.Equal(t, tt.records, got.TotalYearCount())
		})
	}
}

func TestSummary_DefaultClampedToData(t *testing.T) {
	s := newTestServer(t, writeData(t, `title,abstract,publish_time,authors,journal
A,x,2015-01-01,,J1
B,y,2017-01-01,,J2
`))
	got := decodeSummary(t, do(t, s, http.MethodGet, "/api/summary"))
	assert.Equal(t, types.YearRange{Min: 2017, Max: 2017}, *got.Selection)
	assert.Equal(t, 1, got.Records)
	assert.Equal(t, []types.JournalCount{{Journal: "J2", Count: 1}}, got.TopJournals)
}

func TestSummary_Aggregates(t *testing.T) {
	s := newTestServer(t, writeData(t, papersCSV))
	got := decodeSummary(t, do(t, s, http.MethodGet, "/api/summary?min=2019&max=2022"))

	assert.Equal(t, []types.YearCount{
		{Year: 2019, Count: 1}, {Year: 2020, Count: 2}, {Year: 2021, Count: 1}, {Year: 2022, Count: 1},
	}, got.Years)
	assert.Equal(t, types.JournalCount{Journal: "J1", Count: 3}, got.TopJournals[0])
	assert.Equal(t, 1, got.AbstractWords.Min)
	assert.Equal(t, 3, got.AbstractWords.Max)
	require.Len(t, got.Preview, 5)
	assert.Equal(t, "A", got.Preview[0].Title)
}

func TestSummary_BadParams(t *testing.T) {
	s := newTestServer(t, writeData(t, papersCSV))

	for _, q := range []string{"?min=abc", "?max=20x1", "?min=2022&max=2019"} {
		t.Run(q, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/api/summary"+q)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body ErrResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Bad request", body.StatusText)
			assert.NotEmpty(t, body.ErrorText)
		})
	}
}

func TestSummary_MissingSourceIsUnavailable(t *testing.T) {
	s := newTestServer(t, filepath.Join(t.TempDir(), "missing.csv"))

	rec := do(t, s, http.MethodGet, "/api/summary")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dataset unavailable")

	rec = do(t, s, http.MethodGet, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSummary_NoYears(t *testing.T) {
	s := newTestServer(t, writeData(t, `title,abstract,publish_time,authors,journal
A,x,someday,,J1
`))
	got := decodeSummary(t, do(t, s, http.MethodGet, "/api/summary"))
	assert.Nil(t, got.Selection)
	assert.Equal(t, 0, got.Records)

	rec := do(t, s, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data")
}

func TestCharts(t *testing.T) {
	s := newTestServer(t, writeData(t, papersCSV))

	for _, path := range []string{"/charts/years.png", "/charts/journals.png", "/charts/years.png?min=2022&max=2022"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
		})
	}

	rec := do(t, s, http.MethodGet, "/charts/journals.png?min=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPage(t *testing.T) {
	s := newTestServer(t, writeData(t, papersCSV))

	rec := do(t, s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `min="2019"`)
	assert.Contains(t, body, `max="2022"`)
	assert.Contains(t, body, "/charts/years.png?max=2021")
	assert.Contains(t, body, "<td>Jones</td>")
	assert.NotContains(t, body, "<td>Smith</td>", "2019 paper outside default range")
	assert.NotContains(t, body, "No data")
}

func TestPage_EmptySelection(t *testing.T) {
	s := newTestServer(t, writeData(t, `title,abstract,publish_time,authors,journal
A,x,2019-01-01,,J1
B,y,2022-01-01,,J2
`))
	rec := do(t, s, http.MethodGet, "/?min=2020&max=2021")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data")
	assert.NotContains(t, rec.Body.String(), "<img")
}

func TestPage_EscapesCells(t *testing.T) {
	s := newTestServer(t, writeData(t, `title,abstract,publish_time,authors,journal
<script>alert(1)</script>,x,2020-01-01,,J1
`))
	body := do(t, s, http.MethodGet, "/").Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestReload(t *testing.T) {
	path := writeData(t, papersCSV)
	s := newTestServer(t, path)

	decodeSummary(t, do(t, s, http.MethodGet, "/api/summary"))
	decodeSummary(t, do(t, s, http.MethodGet, "/api/summary"))

	rec := do(t, s, http.MethodPost, "/api/reload")
	require.Equal(t, http.StatusOK, rec.Code)
	var body reloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, path, body.Source)
	assert.Equal(t, 5, body.Stats.Kept)

	assert.Equal(t, float64(1), testutil.ToFloat64(s.metrics.cacheEvents.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(s.metrics.cacheEvents.WithLabelValues("miss")))

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodGet, "/api/reload").Code)
}

func TestMetricsAndHealth(t *testing.T) {
	s := newTestServer(t, writeData(t, papersCSV))

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz").Code)
	do(t, s, http.MethodGet, "/api/summary")
	do(t, s, http.MethodGet, "/api/summary?min=bad")

	assert.Equal(t, float64(1), testutil.ToFloat64(s.metrics.requests.WithLabelValues("/api/summary", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.metrics.requests.WithLabelValues("/api/summary", "400")))
	assert.Equal(t, float64(5), testutil.ToFloat64(s.metrics.records))

	rec := do(t, s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	out, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), `explorer_requests_total{code="200",route="/api/summary"} 1`))
	assert.Contains(t, string(out), "explorer_table_load_seconds")
}

func TestWarm(t *testing.T) {
	s := newTestServer(t, writeData(t, papersCSV))
	tbl, err := s.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.Len())

	bad := newTestServer(t, filepath.Join(t.TempDir(), "missing.csv"))
	_, err = bad.Warm(context.Background())
	var dse *dataset.DataSourceError
	assert.ErrorAs(t, err, &dse)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s := newTestServer(t, writeData(t, papersCSV))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
