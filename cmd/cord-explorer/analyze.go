// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/plot"

	"github.com/pdiddy/cord-explorer/internal/aggregate"
	"github.com/pdiddy/cord-explorer/internal/chart"
	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/internal/report"
	"github.com/pdiddy/cord-explorer/internal/wordcloud"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Write the year, journal and word cloud charts",
	Long: `Analyze loads the metadata CSV, prints what cleaning kept and dropped,
and writes three images to the output directory: papers per year, the top
journals and a word cloud of paper titles. With --xlsx the aggregates are
also written to an Excel workbook.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("output-dir", "", "directory for chart images (default output)")
	analyzeCmd.Flags().String("xlsx", "", "also write the aggregates to this .xlsx workbook")
	analyzeCmd.Flags().Int("max-words", 0, "maximum words in the word cloud (default 200)")
	analyzeCmd.Flags().String("font", "", "TrueType font for the word cloud (default Go Regular)")

	_ = viper.BindPFlag("output_dir", analyzeCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("xlsx", analyzeCmd.Flags().Lookup("xlsx"))
	_ = viper.BindPFlag("wordcloud.max_words", analyzeCmd.Flags().Lookup("max-words"))
	_ = viper.BindPFlag("wordcloud.font_file", analyzeCmd.Flags().Lookup("font"))

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := types.AnalyzeConfig{
		HTTP:      httpConfig(),
		Data:      viper.GetString("data"),
		OutputDir: viper.GetString("output_dir"),
		TopN:      viper.GetInt("top_n"),
		Workbook:  viper.GetString("xlsx"),
		WordCloud: types.WordCloudConfig{
			Width:    viper.GetInt("wordcloud.width"),
			Height:   viper.GetInt("wordcloud.height"),
			MaxWords: viper.GetInt("wordcloud.max_words"),
			FontFile: viper.GetString("wordcloud.font_file"),
		},
	}
	if err := types.Validate(cfg); err != nil {
		return err
	}
	return analyze(cmd.Context(), cfg, cmd.OutOrStdout())
}

// analyze runs the batch analysis and reports progress to w.
func analyze(ctx context.Context, cfg types.AnalyzeConfig, w io.Writer) error {
	tbl, err := dataset.Load(ctx, cfg.Data, loadOptions(cfg.HTTP))
	if err != nil {
		return err
	}
	st := tbl.Stats
	logger.Debug("dataset loaded",
		zap.String("source", tbl.Source),
		zap.Int("raw_rows", st.RawRows),
		zap.Int("kept", st.Kept))

	fmt.Fprintf(w, "Loaded %d rows with %d columns from %s\n", st.RawRows, st.Columns, tbl.Source)
	fmt.Fprintf(w, "Dropped %d rows missing title, abstract or publish_time; %d remain\n", st.Dropped, st.Kept)
	if st.UnparsedDates > 0 {
		fmt.Fprintf(w, "  %d publish_time values could not be parsed as dates\n", st.UnparsedDates)
	}
	if st.MissingJournal > 0 {
		fmt.Fprintf(w, "  %d papers have no journal\n", st.MissingJournal)
	}

	s := aggregate.Summarize(tbl.Source, tbl, cfg.TopN, 0)
	if s.Observed != nil {
		fmt.Fprintf(w, "Publication years %d to %d\n", s.Observed.Min, s.Observed.Max)
	}
	ws := s.AbstractWords
	fmt.Fprintf(w, "Abstract words: min %d, max %d, mean %.1f, median %.1f\n", ws.Min, ws.Max, ws.Mean, ws.Median)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	years, err := chart.YearBars(s.Years)
	if err != nil {
		return err
	}
	if err := saveChart(w, years, filepath.Join(cfg.OutputDir, chart.YearsFile)); err != nil {
		return err
	}

	journals, err := chart.JournalBars(s.TopJournals)
	if err != nil {
		return err
	}
	if err := saveChart(w, journals, filepath.Join(cfg.OutputDir, chart.JournalsFile)); err != nil {
		return err
	}

	freq := wordcloud.Frequencies(aggregate.TitleCorpus(tbl), cfg.WordCloud.MaxWords)
	img, err := wordcloud.Render(freq, cfg.WordCloud)
	if err != nil {
		return err
	}
	cloudPath := filepath.Join(cfg.OutputDir, wordcloud.File)
	if err := wordcloud.SavePNG(img, cloudPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "  wrote %s (%d words)\n", cloudPath, len(freq))

	if cfg.Workbook != "" {
		if err := report.WriteWorkbook(cfg.Workbook, s); err != nil {
			return err
		}
		fmt.Fprintf(w, "  wrote %s\n", cfg.Workbook)
	}

	logger.Info("analysis complete", zap.String("output_dir", cfg.OutputDir), zap.Int("papers", s.Records))
	return nil
}

func saveChart(w io.Writer, p *plot.Plot, path string) error {
	if err := chart.Save(p, path, chart.DefaultSize); err != nil {
		return err
	}
	fmt.Fprintf(w, "  wrote %s\n", path)
	return nil
}
