package main

import (
	"fmt"
	"os"

	"github.com/aretw0/revisit/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <recipe>",
	Short: "Export the sequence tree visualization",
	Long:  `Builds the recipe and outputs a Mermaid diagram (graph TD) of its sequence tree.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		highlight, _ := cmd.Flags().GetStringSlice("highlight")
		if err := cli.RunGraph(cmd.OutOrStdout(), args[0], highlight, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating graph: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	graphCmd.Flags().StringSlice("highlight", nil, "Component names to highlight")
	rootCmd.AddCommand(graphCmd)
}
