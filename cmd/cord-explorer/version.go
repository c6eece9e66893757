// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cord-explorer build version",
	Long: `Version prints the release set at build time (mage build stamps it from
git describe), followed by the Go toolchain and platform unless --short is
given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, _ := cmd.Flags().GetBool("short")
		return writeVersion(cmd.OutOrStdout(), short)
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the release")
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, version)
		return err
	}
	_, err := fmt.Fprintf(w, "cord-explorer %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}
