package engine

import (
	"context"
	"path/filepath"
	"time"

	"github.com/driftwatch/driftwatch/internal/audit"
	"github.com/driftwatch/driftwatch/internal/baseline"
	"github.com/driftwatch/driftwatch/internal/detector"
	"github.com/driftwatch/driftwatch/internal/gitmeta"
	"github.com/driftwatch/driftwatch/internal/ignore"
	"github.com/driftwatch/driftwatch/internal/scanner"
	"github.com/driftwatch/driftwatch/internal/types"
)

// Config controls create/check behavior: scan scope, hashing, performance,
// and reporting knobs. One Config describes one operation; there is no state
// shared across invocations.
type Config struct {
	Root      string
	Algorithm string
	ChunkSize int
	Threads   int

	// IgnoreFile overrides the default <root>/.driftwatchignore lookup.
	IgnoreFile string

	// AllowAlgorithmMismatch permits checking a baseline hashed with a
	// different algorithm. Off by default; see detector.ErrAlgorithmMismatch.
	AllowAlgorithmMismatch bool

	// NoAudit disables the JSONL audit trail for check runs.
	NoAudit bool

	// Progress, when set, is invoked once per hashed file.
	Progress func()
}

// CheckResult bundles everything a check produces: the classified report,
// both inventories, and the scan bookkeeping callers need for honest output.
type CheckResult struct {
	Report   *types.ChangeReport
	Baseline *types.Inventory
	Current  *types.Inventory
	Skipped  []types.SkippedFile
	Duration time.Duration
}

// Matcher builds the ignore rule set for cfg: built-in defaults plus the
// configured pattern file, or <root>/.driftwatchignore when none is set.
func Matcher(cfg Config) (ignore.Matcher, error) {
	p := cfg.IgnoreFile
	if p == "" {
		p = filepath.Join(cfg.Root, ignore.IgnoreFileName)
	}
	return ignore.Load(p)
}

// Scan walks cfg.Root and returns a fresh inventory stamped with git
// metadata when the root is inside a repository.
func Scan(ctx context.Context, cfg Config) (*scanner.Result, error) {
	m, err := Matcher(cfg)
	if err != nil {
		return nil, err
	}
	res, err := scanner.Scan(ctx, scanner.Config{
		Root:      cfg.Root,
		Algorithm: cfg.Algorithm,
		ChunkSize: cfg.ChunkSize,
		Threads:   cfg.Threads,
		Progress:  cfg.Progress,
	}, m)
	if err != nil {
		return nil, err
	}
	res.Inventory.GitCommit, res.Inventory.GitBranch = gitmeta.Head(res.Inventory.Root)
	return res, nil
}

// Create scans cfg.Root and persists the result as a baseline at outPath.
func Create(ctx context.Context, cfg Config, outPath string) (*scanner.Result, error) {
	res, err := Scan(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := baseline.Save(outPath, res.Inventory); err != nil {
		return nil, err
	}
	return res, nil
}

// Check loads the baseline at baselinePath, rescans cfg.Root, and classifies
// the drift. When cfg.Algorithm is unset the baseline's algorithm is reused,
// so a plain check never trips the mismatch guard by accident. Baseline
// entries that current ignore rules exclude are reported as excluded, not
// deleted. Each run is appended to the audit trail unless disabled.
func Check(ctx context.Context, cfg Config, baselinePath string) (*CheckResult, error) {
	base, err := baseline.Load(baselinePath)
	if err != nil {
		return nil, err
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = base.Algorithm
	}

	m, err := Matcher(cfg)
	if err != nil {
		return nil, err
	}
	res, err := scanner.Scan(ctx, scanner.Config{
		Root:      cfg.Root,
		Algorithm: cfg.Algorithm,
		ChunkSize: cfg.ChunkSize,
		Threads:   cfg.Threads,
		Progress:  cfg.Progress,
	}, m)
	if err != nil {
		return nil, err
	}

	report, err := detector.Diff(base, res.Inventory, detector.Options{
		AllowAlgorithmMismatch: cfg.AllowAlgorithmMismatch,
		Excluded:               func(rel string) bool { return m.Match(rel, false) },
	})
	if err != nil {
		return nil, err
	}

	out := &CheckResult{
		Report:   report,
		Baseline: base,
		Current:  res.Inventory,
		Skipped:  res.Skipped,
		Duration: res.Duration,
	}
	if !cfg.NoAudit {
		rec := audit.NewCheckRecord(res.Inventory.Root, baselinePath, cfg.Algorithm,
			report, res.Inventory.Count(), len(res.Skipped), res.Duration)
		// Audit failures never fail the check itself.
		_ = audit.NewLog(res.Inventory.Root).Append(rec)
	}
	return out, nil
}

// Describe loads a baseline for display without scanning anything.
func Describe(baselinePath string) (*types.Inventory, error) {
	return baseline.Load(baselinePath)
}
