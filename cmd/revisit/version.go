package main

import (
	"strings"

	"github.com/aretw0/revisit"
	"github.com/aretw0/revisit/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of revisit",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(revisit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
