package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/driftwatch/driftwatch/internal/hashing"
	"github.com/driftwatch/driftwatch/internal/ignore"
)

func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScan_Basic(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.txt":   "alpha",
		"b.txt":   "bravo",
		"c/d.txt": "delta",
	})

	res, err := Scan(context.Background(), Config{Root: root}, ignore.Default())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	inv := res.Inventory
	if inv.Count() != 3 {
		t.Fatalf("expected 3 files, got %d: %v", inv.Count(), inv.Paths())
	}
	want := []string{"a.txt", "b.txt", "c/d.txt"}
	if got := inv.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("paths=%v want %v", got, want)
	}
	rec := inv.Files["a.txt"]
	if rec.SizeBytes != int64(len("alpha")) {
		t.Fatalf("size=%d want %d", rec.SizeBytes, len("alpha"))
	}
	if rec.ModifiedTime.IsZero() {
		t.Fatal("modified time not captured")
	}
	if inv.Algorithm != hashing.DefaultAlgorithm {
		t.Fatalf("algorithm=%q", inv.Algorithm)
	}
}

func TestScan_Deterministic(t *testing.T) {
	root := buildTree(t, map[string]string{
		"z.txt":       "zz",
		"a.txt":       "aa",
		"m/inner.txt": "mm",
	})

	first, err := Scan(context.Background(), Config{Root: root}, ignore.Default())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Scan(context.Background(), Config{Root: root, Threads: 4}, ignore.Default())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Inventory.Paths(), second.Inventory.Paths()) {
		t.Fatalf("path sets differ: %v vs %v", first.Inventory.Paths(), second.Inventory.Paths())
	}
	for p, rec := range first.Inventory.Files {
		if second.Inventory.Files[p].Hash != rec.Hash {
			t.Fatalf("hash for %s differs across scans", p)
		}
	}
}

func TestScan_PrunesIgnoredDirectories(t *testing.T) {
	root := buildTree(t, map[string]string{
		"keep.txt":            "k",
		"node_modules/x.js":   "x", // default ignore
		"build/out.bin":       "o",
		"build/deep/more.bin": "m",
	})

	m, err := ignore.New(append(ignore.DefaultPatterns(), "build/"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := Scan(context.Background(), Config{Root: root}, m)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Inventory.Paths(); !reflect.DeepEqual(got, []string{"keep.txt"}) {
		t.Fatalf("pruning failed: %v", got)
	}
	// pruned entries are exclusions, not failures
	if len(res.Skipped) != 0 {
		t.Fatalf("unexpected skip records: %v", res.Skipped)
	}
}

func TestScan_SymlinkSkippedNotFatal(t *testing.T) {
	root := buildTree(t, map[string]string{"real.txt": "data"})
	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res, err := Scan(context.Background(), Config{Root: root}, ignore.Default())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := res.Inventory.Paths(); !reflect.DeepEqual(got, []string{"real.txt"}) {
		t.Fatalf("paths=%v", got)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Path != "link.txt" {
		t.Fatalf("expected link.txt skip record, got %v", res.Skipped)
	}
}

func TestScan_UnreadableFileSkippedNotFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits ineffective as root")
	}
	root := buildTree(t, map[string]string{
		"open.txt":   "o",
		"locked.txt": "l",
	})
	if err := os.Chmod(filepath.Join(root, "locked.txt"), 0o000); err != nil {
		t.Fatal(err)
	}

	res, err := Scan(context.Background(), Config{Root: root}, ignore.Default())
	if err != nil {
		t.Fatalf("a single unreadable file aborted the scan: %v", err)
	}
	if _, ok := res.Inventory.Files["open.txt"]; !ok {
		t.Fatal("readable sibling missing from inventory")
	}
	if _, ok := res.Inventory.Files["locked.txt"]; ok {
		t.Fatal("unreadable file present in inventory")
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Path != "locked.txt" {
		t.Fatalf("expected locked.txt skip record, got %v", res.Skipped)
	}
}

func TestScan_InvalidRoot(t *testing.T) {
	_, err := Scan(context.Background(), Config{Root: filepath.Join(t.TempDir(), "nope")}, ignore.Default())
	if !errors.Is(err, ErrInvalidRoot) {
		t.Fatalf("missing root: got %v", err)
	}

	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Scan(context.Background(), Config{Root: file}, ignore.Default())
	if !errors.Is(err, ErrInvalidRoot) {
		t.Fatalf("file root: got %v", err)
	}
}

func TestScan_UnsupportedAlgorithm(t *testing.T) {
	root := buildTree(t, map[string]string{"a": "a"})
	_, err := Scan(context.Background(), Config{Root: root, Algorithm: "rot13"}, ignore.Default())
	if !errors.Is(err, hashing.ErrUnsupportedAlgorithm) {
		t.Fatalf("got %v", err)
	}
}

func TestScan_Cancelled(t *testing.T) {
	root := buildTree(t, map[string]string{"a": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, Config{Root: root}, ignore.Default()); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestScan_ProgressCallback(t *testing.T) {
	root := buildTree(t, map[string]string{"a": "1", "b": "2", "c": "3"})
	n := 0
	_, err := Scan(context.Background(), Config{Root: root, Progress: func() { n++ }}, ignore.Default())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("progress called %d times, want 3", n)
	}
}
