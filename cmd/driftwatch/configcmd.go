package driftwatch

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/driftwatch/driftwatch/internal/config"
	"github.com/driftwatch/driftwatch/internal/hashing"
)

var (
	cfgOutput    string
	cfgAlgorithm string
	cfgChunkSize int
	cfgThreads   int
	cfgNoColor   bool
	cfgNoAudit   bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .driftwatch.yml with selected options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".driftwatch.yml", "output file path")
	initCmd.Flags().StringVar(&cfgAlgorithm, "algorithm", hashing.DefaultAlgorithm, "hash algorithm: "+strings.Join(hashing.Algorithms(), "|"))
	initCmd.Flags().IntVar(&cfgChunkSize, "chunk-size", 0, "read chunk size in bytes (0 = 64KiB)")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "hashing worker count (0 = sequential)")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgNoAudit, "no-audit", false, "disable the audit trail by default")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if !hashing.Supported(cfgAlgorithm) {
		return fmt.Errorf("unsupported algorithm: %q (supported: %s)", cfgAlgorithm, strings.Join(hashing.Algorithms(), ", "))
	}

	fc := config.FileConfig{
		Algorithm: strPtr(cfgAlgorithm),
		ChunkSize: intPtr(cfgChunkSize),
		Threads:   intPtr(cfgThreads),
		NoColor:   boolPtr(cfgNoColor),
		NoAudit:   boolPtr(cfgNoAudit),
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Println("Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
