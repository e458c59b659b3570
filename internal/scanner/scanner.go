// Package scanner walks a directory tree and produces a fresh inventory of
// every regular file it can hash. Traversal is depth-first and lexicographic
// at each level, so two scans of an unchanged tree yield identical
// inventories.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/driftwatch/driftwatch/internal/hashing"
	"github.com/driftwatch/driftwatch/internal/ignore"
	"github.com/driftwatch/driftwatch/internal/types"
)

// ErrInvalidRoot is returned when the scan root does not exist or is not a
// directory. It is raised before any traversal begins.
var ErrInvalidRoot = errors.New("invalid scan root")

// Config controls a single scan. The zero value is completed with defaults
// (sha256, 64 KiB chunks, sequential hashing).
type Config struct {
	Root      string
	Algorithm string
	ChunkSize int
	// Threads sets the hashing worker count; <=1 hashes sequentially.
	// Traversal order never leaks into the result.
	Threads int
	// Progress, when set, is invoked once per hashed file.
	Progress func()
}

// Result carries the inventory plus everything the scan could not include.
// A non-empty Skipped list means the inventory is incomplete and reports
// must say so.
type Result struct {
	Inventory *types.Inventory
	Skipped   []types.SkippedFile
	Duration  time.Duration
}

type candidate struct {
	rel  string
	abs  string
	info fs.FileInfo
}

// Scan traverses cfg.Root, consults ign for every entry, and hashes each
// eligible file. Ignored directories are pruned without descending. Per-entry
// failures (permission, vanished file, special file) are recorded and skipped;
// only an invalid root, an unsupported algorithm, or context cancellation
// abort the scan.
func Scan(ctx context.Context, cfg Config, ign ignore.Matcher) (*Result, error) {
	start := time.Now()

	if cfg.Algorithm == "" {
		cfg.Algorithm = hashing.DefaultAlgorithm
	}
	if !hashing.Supported(cfg.Algorithm) {
		return nil, fmt.Errorf("%w: %q", hashing.ErrUnsupportedAlgorithm, cfg.Algorithm)
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, cfg.Root, err)
	}
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s: not a directory", ErrInvalidRoot, root)
	}

	res := &Result{
		Inventory: &types.Inventory{
			Root:      root,
			Algorithm: cfg.Algorithm,
			CreatedAt: time.Now().UTC(),
			Files:     map[string]types.FileRecord{},
		},
	}

	candidates, skipped, err := collect(ctx, root, ign)
	if err != nil {
		return nil, err
	}
	res.Skipped = skipped

	if err := hashAll(ctx, cfg, candidates, res); err != nil {
		return nil, err
	}

	sort.Slice(res.Skipped, func(i, j int) bool { return res.Skipped[i].Path < res.Skipped[j].Path })
	res.Duration = time.Since(start)
	return res, nil
}

// collect enumerates eligible files. WalkDir reads each directory sorted, so
// the candidate list is already deterministic.
func collect(ctx context.Context, root string, ign ignore.Matcher) ([]candidate, []types.SkippedFile, error) {
	var out []candidate
	var skipped []types.SkippedFile

	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			skipped = append(skipped, types.SkippedFile{Path: relOrSelf(root, p), Reason: err.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}
		rel := relOrSelf(root, p)

		if d.IsDir() {
			if ign.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if ign.Match(rel, false) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			skipped = append(skipped, types.SkippedFile{Path: rel, Reason: "symbolic link"})
			return nil
		}
		info, err := d.Info()
		if err != nil {
			skipped = append(skipped, types.SkippedFile{Path: rel, Reason: err.Error()})
			return nil
		}
		if !info.Mode().IsRegular() {
			skipped = append(skipped, types.SkippedFile{Path: rel, Reason: "not a regular file"})
			return nil
		}
		out = append(out, candidate{rel: rel, abs: p, info: info})
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	return out, skipped, nil
}

// hashAll digests every candidate, in parallel when configured. Results land
// in a map, so completion order cannot affect the inventory; serialization
// sorts by path.
func hashAll(ctx context.Context, cfg Config, candidates []candidate, res *Result) error {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	if max := runtime.GOMAXPROCS(0) * 2; threads > max {
		threads = max
	}

	var mu sync.Mutex
	record := func(c candidate, digest string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			res.Skipped = append(res.Skipped, types.SkippedFile{Path: c.rel, Reason: err.Error()})
			return
		}
		res.Inventory.Files[c.rel] = types.FileRecord{
			Hash:         digest,
			SizeBytes:    c.info.Size(),
			ModifiedTime: c.info.ModTime(),
		}
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}

	if threads == 1 {
		for _, c := range candidates {
			if err := ctx.Err(); err != nil {
				return err
			}
			digest, err := hashing.Sum(c.abs, cfg.Algorithm, cfg.ChunkSize)
			record(c, digest, err)
		}
		return nil
	}

	jobs := make(chan candidate)
	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				digest, err := hashing.Sum(c.abs, cfg.Algorithm, cfg.ChunkSize)
				record(c, digest, err)
			}
		}()
	}

	var cancelled error
feed:
	for _, c := range candidates {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- c:
		}
	}
	close(jobs)
	wg.Wait()
	return cancelled
}

func relOrSelf(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
