// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/internal/explorer"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Serve the interactive year-range explorer",
	Long: `Explore serves a web page with a publication year range selector. The
charts and the preview table follow the selected range. The dataset is loaded
once at startup and cached; edit the file or POST /api/reload to reload it.`,
	RunE: runExplore,
}

func init() {
	exploreCmd.Flags().String("addr", "", "listen address (default localhost:8501)")
	exploreCmd.Flags().Int("default-min-year", 0, "initial lower bound of the year selection (default 2020)")
	exploreCmd.Flags().Int("default-max-year", 0, "initial upper bound of the year selection (default 2021)")

	_ = viper.BindPFlag("addr", exploreCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("default_min_year", exploreCmd.Flags().Lookup("default-min-year"))
	_ = viper.BindPFlag("default_max_year", exploreCmd.Flags().Lookup("default-max-year"))

	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg := types.ExplorerConfig{
		HTTP:        httpConfig(),
		Data:        viper.GetString("data"),
		Addr:        viper.GetString("addr"),
		TopN:        viper.GetInt("top_n"),
		PreviewRows: viper.GetInt("preview_rows"),
		DefaultRange: types.YearRange{
			Min: viper.GetInt("default_min_year"),
			Max: viper.GetInt("default_max_year"),
		},
	}
	if err := types.Validate(cfg); err != nil {
		return err
	}

	opts := loadOptions(cfg.HTTP)
	srv := explorer.New(cfg, func(ctx context.Context, source string) (*dataset.Table, error) {
		return dataset.Load(ctx, source, opts)
	}, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tbl, err := srv.Warm(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d papers from %s\n", tbl.Len(), tbl.Source)
	fmt.Fprintf(cmd.OutOrStdout(), "Explorer running at http://%s/ (Ctrl+C to stop)\n", cfg.Addr)

	return srv.ListenAndServe(ctx)
}
