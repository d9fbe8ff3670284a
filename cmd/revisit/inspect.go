package main

import (
	"fmt"
	"os"

	"github.com/aretw0/revisit/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <recipe>",
	Short: "Summarize the study of a recipe",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		style, _ := cmd.Flags().GetString("style")
		width, _ := cmd.Flags().GetInt("width")
		if err := cli.RunInspect(cmd.OutOrStdout(), args[0], style, width, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error inspecting study: %v\n", err)
			os.Exit(1)
		}
	},
}

var kindsCmd = &cobra.Command{
	Use:   "kinds [kind]",
	Short: "List response and component kinds with their fields",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var kind string
		if len(args) > 0 {
			kind = args[0]
		}
		if err := cli.RunKinds(cmd.OutOrStdout(), kind); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	inspectCmd.Flags().String("style", "", "glamour style (dark, light, notty), or markdown for raw output")
	inspectCmd.Flags().Int("width", 100, "Word wrap width")
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(kindsCmd)
}
