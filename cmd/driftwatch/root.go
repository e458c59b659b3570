package driftwatch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagThreads       int
	flagNoColor       bool
	flagNoUpdateCheck bool
	flagConfigFile    string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the driftwatch CLI.
var rootCmd = &cobra.Command{
	Use:           "driftwatch",
	Short:         "Detect file drift against a recorded baseline",
	Long:          "Driftwatch records a hash baseline of a directory tree and reports every file that was modified, added or deleted since.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the driftwatch CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "hashing worker count (0 = sequential)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (overrides local/global lookup)")
}
