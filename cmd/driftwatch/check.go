package driftwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/driftwatch/driftwatch/internal/engine"
	"github.com/driftwatch/driftwatch/internal/report"
	"github.com/driftwatch/driftwatch/internal/update"
	"github.com/driftwatch/driftwatch/pkg/core"
)

var (
	flagCheckPath          string
	flagCheckBaseline      string
	flagCheckAlgorithm     string
	flagCheckChunkSize     int
	flagCheckIgnore        string
	flagCheckAllowMismatch bool
	flagCheckNoAudit       bool
	flagCheckShowUnchanged bool
	flagCheckSelfUpdate    bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Rescan and report drift against a baseline",
		Long:  "Check rescans the tree and reports every modified, added or deleted file.\nExit status: 0 = no changes, 1 = changes detected, 2 = failure.",
		RunE:  runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagCheckPath, "path", "p", ".", "directory to check")
	cmd.Flags().StringVarP(&flagCheckBaseline, "baseline", "b", "", "baseline file path (default driftwatch.baseline.json in the root)")
	cmd.Flags().StringVarP(&flagCheckAlgorithm, "algorithm", "a", "", "hash algorithm override (default: the baseline's)")
	cmd.Flags().IntVar(&flagCheckChunkSize, "chunk-size", 0, "read chunk size in bytes (0 = 64KiB)")
	cmd.Flags().StringVar(&flagCheckIgnore, "ignore-file", "", "ignore pattern file (default <root>/.driftwatchignore)")
	cmd.Flags().BoolVar(&flagCheckAllowMismatch, "allow-algorithm-mismatch", false, "compare against a baseline hashed with a different algorithm")
	cmd.Flags().BoolVar(&flagCheckNoAudit, "no-audit", false, "do not append this run to the audit trail")
	cmd.Flags().BoolVar(&flagCheckShowUnchanged, "show-unchanged", false, "list unchanged files too")
	cmd.Flags().BoolVar(&flagCheckSelfUpdate, "self-update", false, "update driftwatch to the latest release")
}

func runCheck(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagCheckPath)
	lcfg, gcfg := loadConfigs(abs)

	cfg := buildConfig(abs, flagCheckAlgorithm, flagCheckIgnore, flagCheckChunkSize, lcfg, gcfg)
	cfg.AllowAlgorithmMismatch = pickBool(flagCheckAllowMismatch, lcfg.AllowAlgorithmMismatch, gcfg.AllowAlgorithmMismatch)
	cfg.NoAudit = pickBool(flagCheckNoAudit, lcfg.NoAudit, gcfg.NoAudit)
	basePath := resolveBaselinePath(abs, flagCheckBaseline, lcfg, gcfg)

	// Friendly banner before scanning
	if !flagJSON {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'driftwatch update' to upgrade\n", latest)
			}
		}
		if flagCheckSelfUpdate {
			// invoke in-band self update
			if err := selfUpdate(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
	}

	var done func()
	if !flagJSON {
		cfg.Progress, done = stderrProgress()
	}
	res, err := engine.Check(context.Background(), cfg, basePath)
	if err != nil {
		return fmt.Errorf("check error: %w", err)
	}
	if done != nil {
		done()
	}

	if flagJSON {
		if err := core.MarshalReport(os.Stdout, res.Report); err != nil {
			return err
		}
	} else {
		report.PrintReport(os.Stdout, res.Report, res.Skipped, report.PrintOptions{
			NoColor:       resolveNoColor(lcfg, gcfg),
			Duration:      res.Duration,
			FilesScanned:  res.Current.Count(),
			ShowUnchanged: flagCheckShowUnchanged,
		})
	}

	if res.Report.HasChanges() {
		os.Exit(1)
	}
	return nil
}
