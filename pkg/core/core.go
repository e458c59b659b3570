package core

import (
	"context"

	"github.com/driftwatch/driftwatch/internal/engine"
	"github.com/driftwatch/driftwatch/internal/hashing"
	"github.com/driftwatch/driftwatch/internal/scanner"
	"github.com/driftwatch/driftwatch/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type CheckResult = engine.CheckResult
type ScanResult = scanner.Result
type Inventory = types.Inventory
type FileRecord = types.FileRecord
type ChangeReport = types.ChangeReport

// Create scans cfg.Root and writes a baseline to outPath.
func Create(ctx context.Context, cfg Config, outPath string) (*ScanResult, error) {
	return engine.Create(ctx, cfg, outPath)
}

// Check rescans cfg.Root and classifies drift against the baseline at
// baselinePath.
func Check(ctx context.Context, cfg Config, baselinePath string) (*CheckResult, error) {
	return engine.Check(ctx, cfg, baselinePath)
}

// Describe loads a baseline without scanning.
func Describe(baselinePath string) (*Inventory, error) {
	return engine.Describe(baselinePath)
}

// HashFile computes the digest of a single file.
func HashFile(path, algorithm string) (string, error) {
	return hashing.Sum(path, algorithm, 0)
}

// Algorithms returns the supported hash algorithm names.
// Exposed for convenience to avoid importing internals directly.
func Algorithms() []string { return hashing.Algorithms() }
