// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-explorer/internal/aggregate"
	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/internal/report"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print the dataset aggregates as YAML or JSON",
	Long: `Summarize loads the metadata CSV and prints the year histogram, the top
journals, abstract word statistics and a preview of the first records.
Use --min-year and --max-year to restrict the summary to a year range.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("format", "", "output format: yaml or json (default yaml)")
	summarizeCmd.Flags().Int("min-year", 0, "lower bound of the year range")
	summarizeCmd.Flags().Int("max-year", 0, "upper bound of the year range")

	_ = viper.BindPFlag("format", summarizeCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg := types.SummarizeConfig{
		HTTP:        httpConfig(),
		Data:        viper.GetString("data"),
		Format:      viper.GetString("format"),
		TopN:        viper.GetInt("top_n"),
		PreviewRows: viper.GetInt("preview_rows"),
	}
	if cmd.Flags().Changed("min-year") || cmd.Flags().Changed("max-year") {
		lo, _ := cmd.Flags().GetInt("min-year")
		hi, _ := cmd.Flags().GetInt("max-year")
		cfg.Range = &types.YearRange{Min: lo, Max: hi}
	}
	if err := types.Validate(cfg); err != nil {
		return err
	}
	return summarize(cmd.Context(), cfg, cmd.OutOrStdout())
}

// summarize writes the aggregates of cfg.Data to w. A zero bound in
// cfg.Range is open and takes the observed year at that end.
func summarize(ctx context.Context, cfg types.SummarizeConfig, w io.Writer) error {
	tbl, err := dataset.Load(ctx, cfg.Data, loadOptions(cfg.HTTP))
	if err != nil {
		return err
	}

	var rows aggregate.Rows = tbl
	var sel *types.YearRange
	if cfg.Range != nil {
		lo, hi, _ := aggregate.YearBounds(tbl)
		sel = &types.YearRange{Min: cfg.Range.Min, Max: cfg.Range.Max}
		if sel.Min == 0 {
			sel.Min = lo
		}
		if sel.Max == 0 {
			sel.Max = hi
		}
		rows = aggregate.FilterByYearRange(tbl, sel.Min, sel.Max)
	}

	s := aggregate.Summarize(tbl.Source, rows, cfg.TopN, cfg.PreviewRows)
	s.Selection = sel
	return report.Write(w, s, report.Format(cfg.Format))
}
