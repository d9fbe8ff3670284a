package main

import (
	"fmt"
	"os"

	"github.com/aretw0/revisit/internal/cli"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <recipe>",
	Short: "Build the study config of a recipe",
	Long: `Loads a recipe, builds the study and writes the config document to stdout or --out.
With --assets, referenced files are copied into the given reVISit checkout and
their paths are rewritten.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.BuildOptions{Recipe: args[0]}
		opts.Out, _ = cmd.Flags().GetString("out")
		opts.Assets, _ = cmd.Flags().GetString("assets")
		opts.ReactAssets, _ = cmd.Flags().GetString("react-assets")
		opts.Server, _ = cmd.Flags().GetBool("server")
		opts.Indent, _ = cmd.Flags().GetInt("indent")

		if err := cli.RunBuild(cmd.OutOrStdout(), opts, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "Write the document to this file instead of stdout")
	buildCmd.Flags().String("assets", "", "reVISit checkout to copy referenced assets into")
	buildCmd.Flags().String("react-assets", "", "Checkout for react-component sources (defaults to --assets)")
	buildCmd.Flags().Bool("server", false, "Skip copying react-component sources")
	buildCmd.Flags().Int("indent", 4, "Spaces of JSON indentation")
	rootCmd.AddCommand(buildCmd)
}
