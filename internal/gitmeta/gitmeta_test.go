package gitmeta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func TestHead_NotARepository(t *testing.T) {
	commit, branch := Head(t.TempDir())
	if commit != "" || branch != "" {
		t.Fatalf("expected empty metadata, got %q %q", commit, branch)
	}
}

func TestHead_Repository(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("f.txt"); err != nil {
		t.Fatal(err)
	}
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}

	commit, branch := Head(dir)
	if commit != hash.String() {
		t.Fatalf("commit=%q want %q", commit, hash)
	}
	if branch == "" {
		t.Fatal("expected a branch name")
	}

	// Subdirectories resolve through DetectDotGit.
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if c, _ := Head(sub); c != hash.String() {
		t.Fatalf("subdir commit=%q", c)
	}
}
