package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/driftwatch/driftwatch/internal/types"
)

func TestAppendAndHistory(t *testing.T) {
	root := t.TempDir()
	l := NewLog(root)

	report := &types.ChangeReport{
		Modified:  []string{"a.txt"},
		Added:     []string{"e.txt"},
		Unchanged: []string{"c.txt"},
	}
	first := NewCheckRecord(root, "b.json", "sha256", report, 3, 1, 42*time.Millisecond)
	first.CheckID = "check_1"
	if err := l.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}
	second := NewCheckRecord(root, "b.json", "sha256", &types.ChangeReport{}, 3, 0, time.Millisecond)
	second.CheckID = "check_2"
	if err := l.Append(second); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := l.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// newest first
	if records[0].CheckID != "check_2" || records[1].CheckID != "check_1" {
		t.Fatalf("order wrong: %v %v", records[0].CheckID, records[1].CheckID)
	}
	if records[1].Modified != 1 || records[1].Added != 1 || records[1].FilesSkipped != 1 {
		t.Fatalf("counts wrong: %+v", records[1])
	}
}

func TestNewLog_PrefersGitDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	l := NewLog(root)
	if err := l.Append(CheckRecord{CheckID: "c"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, ".git", "driftwatch_audit.jsonl")); err != nil {
		t.Fatalf("audit log not under .git: %v", err)
	}
}

func TestHistory_ReadsExistingFile(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, ".driftwatch_audit.jsonl")
	body := `{"check_id":"ok","timestamp":"2026-01-01T00:00:00Z"}` + "\n" + `{"check_id":"ok2"}` + "\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	records, err := (&Log{logPath: p}).History()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
}
