package driftwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/driftwatch/driftwatch/internal/engine"
)

var (
	flagCreatePath      string
	flagCreateOutput    string
	flagCreateAlgorithm string
	flagCreateChunkSize int
	flagCreateIgnore    string
)

func init() {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a baseline of the current tree",
		RunE:  runCreate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagCreatePath, "path", "p", ".", "directory to baseline")
	cmd.Flags().StringVarP(&flagCreateOutput, "output", "o", "", "baseline file path (default driftwatch.baseline.json in the root)")
	cmd.Flags().StringVarP(&flagCreateAlgorithm, "algorithm", "a", "", "hash algorithm (md5|sha1|sha256|sha512|blake2|xxh64)")
	cmd.Flags().IntVar(&flagCreateChunkSize, "chunk-size", 0, "read chunk size in bytes (0 = 64KiB)")
	cmd.Flags().StringVar(&flagCreateIgnore, "ignore-file", "", "ignore pattern file (default <root>/.driftwatchignore)")
}

func runCreate(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagCreatePath)
	lcfg, gcfg := loadConfigs(abs)

	cfg := buildConfig(abs, flagCreateAlgorithm, flagCreateIgnore, flagCreateChunkSize, lcfg, gcfg)
	outPath := resolveBaselinePath(abs, flagCreateOutput, lcfg, gcfg)

	var done func()
	if !flagJSON {
		fmt.Fprintf(os.Stderr, "Baselining %s...\n", abs)
		cfg.Progress, done = stderrProgress()
	}
	res, err := engine.Create(context.Background(), cfg, outPath)
	if err != nil {
		return fmt.Errorf("create error: %w", err)
	}
	if done != nil {
		done()
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"baseline_file": outPath,
			"algorithm":     res.Inventory.Algorithm,
			"files":         res.Inventory.Count(),
			"skipped":       len(res.Skipped),
			"duration":      res.Duration.String(),
		})
	}

	fmt.Printf("Wrote %s (%d files, %s, %.2fs)\n", outPath, res.Inventory.Count(), res.Inventory.Algorithm, res.Duration.Seconds())
	if len(res.Skipped) > 0 {
		fmt.Printf("Skipped %d entries, the baseline is incomplete:\n", len(res.Skipped))
		for _, s := range res.Skipped {
			fmt.Printf("  %s (%s)\n", s.Path, s.Reason)
		}
	}
	return nil
}
