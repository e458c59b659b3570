// Package baseline persists inventories as versioned JSON snapshots. A
// baseline is written wholesale and read wholesale; there is no partial
// update or partial recovery. Anything that does not match the schema is
// corrupt, full stop.
package baseline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	semver "github.com/blang/semver/v4"
	"github.com/driftwatch/driftwatch/internal/types"
)

// SchemaVersion is written into every baseline. Loads accept the same major
// version only.
const SchemaVersion = "1.0.0"

// DefaultFileName is where create/check look when no path is given.
const DefaultFileName = "driftwatch.baseline.json"

var (
	// ErrNotFound is returned when the baseline file does not exist.
	ErrNotFound = errors.New("baseline not found")
	// ErrCorrupt is returned for invalid JSON, missing required fields, or
	// an incompatible schema version.
	ErrCorrupt = errors.New("baseline corrupt")
	// ErrWrite is returned when the baseline cannot be persisted.
	ErrWrite = errors.New("baseline write failed")
)

type metadata struct {
	RootDirectory string    `json:"root_directory"`
	Algorithm     string    `json:"algorithm"`
	CreatedAt     time.Time `json:"created_at"`
	FileCount     int       `json:"file_count"`
	SchemaVersion string    `json:"schema_version"`
	GitCommit     string    `json:"git_commit,omitempty"`
	GitBranch     string    `json:"git_branch,omitempty"`
}

type document struct {
	Metadata metadata                    `json:"metadata"`
	Files    map[string]types.FileRecord `json:"files"`
}

// Save serializes inv to path, overwriting any existing file. The write is
// atomic: content goes to a temp file in the same directory which is then
// renamed over the destination, so an interrupted save never leaves a
// truncated baseline behind.
func Save(path string, inv *types.Inventory) error {
	doc := document{
		Metadata: metadata{
			RootDirectory: inv.Root,
			Algorithm:     inv.Algorithm,
			CreatedAt:     inv.CreatedAt,
			FileCount:     len(inv.Files),
			SchemaVersion: SchemaVersion,
			GitCommit:     inv.GitCommit,
			GitBranch:     inv.GitBranch,
		},
		Files: inv.Files,
	}
	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	buf = append(buf, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".driftwatch-baseline-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

// Load reads and validates the baseline at path and rebuilds the Inventory
// it was saved from.
func Load(path string) (*types.Inventory, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}

	var doc document
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	return &types.Inventory{
		Root:      doc.Metadata.RootDirectory,
		Algorithm: doc.Metadata.Algorithm,
		CreatedAt: doc.Metadata.CreatedAt,
		GitCommit: doc.Metadata.GitCommit,
		GitBranch: doc.Metadata.GitBranch,
		Files:     doc.Files,
	}, nil
}

func validate(doc document) error {
	m := doc.Metadata
	if m.SchemaVersion == "" {
		return errors.New("missing schema_version")
	}
	v, err := semver.ParseTolerant(m.SchemaVersion)
	if err != nil {
		return fmt.Errorf("bad schema_version %q: %v", m.SchemaVersion, err)
	}
	cur := semver.MustParse(SchemaVersion)
	if v.Major != cur.Major {
		return fmt.Errorf("schema_version %s incompatible with %s", m.SchemaVersion, SchemaVersion)
	}
	if m.RootDirectory == "" {
		return errors.New("missing root_directory")
	}
	if m.Algorithm == "" {
		return errors.New("missing algorithm")
	}
	if m.CreatedAt.IsZero() {
		return errors.New("missing created_at")
	}
	if doc.Files == nil {
		return errors.New("missing files")
	}
	if m.FileCount != len(doc.Files) {
		return fmt.Errorf("file_count %d does not match %d files", m.FileCount, len(doc.Files))
	}
	for p, rec := range doc.Files {
		if p == "" || rec.Hash == "" {
			return fmt.Errorf("invalid file record %q", p)
		}
		if rec.SizeBytes < 0 {
			return fmt.Errorf("negative size for %q", p)
		}
	}
	return nil
}
