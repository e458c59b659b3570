package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/driftwatch/driftwatch/internal/types"
)

func TestPrintReport_NoChanges(t *testing.T) {
	var buf bytes.Buffer
	r := &types.ChangeReport{Unchanged: []string{"a.txt"}}
	PrintReport(&buf, r, nil, PrintOptions{NoColor: true})

	out := buf.String()
	if !strings.Contains(out, "No changes detected") {
		t.Fatalf("missing clean banner:\n%s", out)
	}
	if !strings.Contains(out, "unchanged: 1") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

func TestPrintReport_ChangesAndSkips(t *testing.T) {
	var buf bytes.Buffer
	r := &types.ChangeReport{
		Modified: []string{"a.txt"},
		Added:    []string{"e.txt"},
		Deleted:  []string{"b.txt"},
		Excluded: []string{"c/d.txt"},
	}
	skipped := []types.SkippedFile{{Path: "locked.txt", Reason: "permission denied"}}
	PrintReport(&buf, r, skipped, PrintOptions{NoColor: true, FilesScanned: 3, Duration: time.Second})

	out := buf.String()
	for _, want := range []string{
		"modified  a.txt",
		"added     e.txt",
		"deleted   b.txt",
		"c/d.txt (now ignored, was in baseline)",
		"Changes: 3 (modified: 1, added: 1, deleted: 1)",
		"Files scanned: 3",
		"Skipped 1 entries",
		"locked.txt (permission denied)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestPrintBaseline_Metadata(t *testing.T) {
	var buf bytes.Buffer
	inv := &types.Inventory{
		Root:      "/srv/data",
		Algorithm: "sha256",
		CreatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		GitCommit: "abc123def4567890abc123def4567890abc123de",
		GitBranch: "main",
		Files: map[string]types.FileRecord{
			"a.txt": {Hash: strings.Repeat("f", 64), SizeBytes: 5, ModifiedTime: time.Now()},
		},
	}
	PrintBaseline(&buf, inv, PrintOptions{NoColor: true})

	out := buf.String()
	for _, want := range []string{"/srv/data", "sha256", "Files:     1", "main@abc123", "a.txt", "ffffffffffffffff…"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("f", 64)) {
		t.Fatal("full hash printed; expected truncation")
	}
}
