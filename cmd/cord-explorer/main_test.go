package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord-explorer/internal/chart"
	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/internal/wordcloud"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

const metadataCSV = `cord_uid,title,abstract,publish_time,authors,journal
u1,Coronavirus transmission in households,Household spread of the virus,2020-03-01,Smith,Lancet
u2,Vaccine trials for coronavirus,Early vaccine results,2020-07-15,Jones,Lancet
u3,Influenza surveillance,Seasonal flu data,2019,Lee,BMJ
u4,Untitled abstract,,2020-01-01,Kim,BMJ
u5,Masks and transmission,Mask efficacy study,2021-02-02,,Nature
`

func writeMetadata(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.csv")
	require.NoError(t, os.WriteFile(path, []byte(metadataCSV), 0o644))
	return path
}

func TestAnalyze(t *testing.T) {
	out := t.TempDir()
	cfg := types.AnalyzeConfig{
		Data:      writeMetadata(t),
		OutputDir: out,
		TopN:      10,
		Workbook:  filepath.Join(out, "summary.xlsx"),
		WordCloud: wordcloud.DefaultConfig(),
	}
	require.NoError(t, types.Validate(cfg))

	var buf bytes.Buffer
	require.NoError(t, analyze(context.Background(), cfg, &buf))

	progress := buf.String()
	assert.Contains(t, progress, "Loaded 5 rows with 6 columns")
	assert.Contains(t, progress, "Dropped 1 rows missing title, abstract or publish_time; 4 remain")
	assert.Contains(t, progress, "Publication years 2019 to 2021")

	for _, name := range []string{chart.YearsFile, chart.JournalsFile, wordcloud.File} {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	f, err := excelize.OpenFile(cfg.Workbook)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Journals")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lancet", "2"}, rows[1])
}

func TestAnalyze_MissingSource(t *testing.T) {
	cfg := types.AnalyzeConfig{
		Data:      filepath.Join(t.TempDir(), "nope.csv"),
		OutputDir: t.TempDir(),
		TopN:      10,
		WordCloud: wordcloud.DefaultConfig(),
	}
	err := analyze(context.Background(), cfg, &bytes.Buffer{})

	var dse *dataset.DataSourceError
	assert.ErrorAs(t, err, &dse)
}

func TestAnalyze_BadFontIsAnError(t *testing.T) {
	font := filepath.Join(t.TempDir(), "some.txt")
	require.NoError(t, os.WriteFile(font, []byte("not a font"), 0o644))

	wc := wordcloud.DefaultConfig()
	wc.FontFile = font
	cfg := types.AnalyzeConfig{Data: writeMetadata(t), OutputDir: t.TempDir(), TopN: 10, WordCloud: wc}
	require.NoError(t, types.Validate(cfg))

	err := analyze(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, "parsing font")
}

func TestSummarize(t *testing.T) {
	data := writeMetadata(t)

	t.Run("yaml whole table", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := types.SummarizeConfig{Data: data, Format: "yaml", TopN: 2, PreviewRows: 1}
		require.NoError(t, summarize(context.Background(), cfg, &buf))

		var s types.Summary
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &s))
		assert.Equal(t, 4, s.Records)
		assert.Nil(t, s.Selection)
		assert.Equal(t, []types.JournalCount{{Journal: "Lancet", Count: 2}, {Journal: "BMJ", Count: 1}}, s.TopJournals)
		require.Len(t, s.Preview, 1)
		assert.Equal(t, "Coronavirus transmission in households", s.Preview[0].Title)
	})

	t.Run("json with open-ended range", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := types.SummarizeConfig{
			Data: data, Format: "json", TopN: 10,
			Range: &types.YearRange{Min: 2020},
		}
		require.NoError(t, summarize(context.Background(), cfg, &buf))

		var s types.Summary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &s))
		assert.Equal(t, &types.YearRange{Min: 2020, Max: 2021}, s.Selection)
		assert.Equal(t, 3, s.Records)
		assert.Equal(t, []types.YearCount{{Year: 2020, Count: 2}, {Year: 2021, Count: 1}}, s.Years)
	})
}

func TestConfigValidation(t *testing.T) {
	err := types.Validate(types.SummarizeConfig{Data: "x.csv", Format: "toml", TopN: 10})
	assert.Error(t, err)

	err = types.Validate(types.ExplorerConfig{Data: "x.csv", Addr: "not an addr", TopN: 10})
	assert.Error(t, err)
}

func TestWriteVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeVersion(&buf, true))
	assert.Equal(t, version+"\n", buf.String())

	buf.Reset()
	require.NoError(t, writeVersion(&buf, false))
	assert.Contains(t, buf.String(), "cord-explorer "+version)
	assert.Contains(t, buf.String(), runtime.GOOS+"/"+runtime.GOARCH)
}
