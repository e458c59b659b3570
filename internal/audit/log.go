// Package audit keeps an append-only JSONL trail of integrity checks so a
// tree's drift history survives the terminal session.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/driftwatch/driftwatch/internal/types"
)

// CheckRecord summarizes one check run against a baseline.
type CheckRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	CheckID      string    `json:"check_id"`
	Root         string    `json:"root"`
	BaselineFile string    `json:"baseline_file"`
	Algorithm    string    `json:"algorithm"`
	Modified     int       `json:"modified"`
	Added        int       `json:"added"`
	Deleted      int       `json:"deleted"`
	Unchanged    int       `json:"unchanged"`
	Excluded     int       `json:"excluded,omitempty"`
	FilesScanned int       `json:"files_scanned"`
	FilesSkipped int       `json:"files_skipped,omitempty"`
	Duration     string    `json:"duration"`
}

// Log appends check records under a fixed path per scan root.
type Log struct {
	logPath string
}

// NewLog places the trail inside .git when the root is a repository, to keep
// it out of accidental commits, and falls back to a dotfile in the root.
func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".driftwatch_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "driftwatch_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// Append writes one record. A missing CheckID is filled from the clock.
func (l *Log) Append(rec CheckRecord) error {
	if rec.CheckID == "" {
		rec.CheckID = fmt.Sprintf("check_%d", time.Now().Unix())
	}
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// History returns all records, newest first. Unparseable lines are skipped so
// one bad write never hides the rest of the trail.
func (l *Log) History() ([]CheckRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []CheckRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec CheckRecord
		if err := dec.Decode(&rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// NewCheckRecord builds a record from a finished check.
func NewCheckRecord(root, baselineFile, algorithm string, report *types.ChangeReport, filesScanned, filesSkipped int, duration time.Duration) CheckRecord {
	return CheckRecord{
		Timestamp:    time.Now(),
		Root:         root,
		BaselineFile: baselineFile,
		Algorithm:    algorithm,
		Modified:     len(report.Modified),
		Added:        len(report.Added),
		Deleted:      len(report.Deleted),
		Unchanged:    len(report.Unchanged),
		Excluded:     len(report.Excluded),
		FilesScanned: filesScanned,
		FilesSkipped: filesSkipped,
		Duration:     duration.String(),
	}
}
