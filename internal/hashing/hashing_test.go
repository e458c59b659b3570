package hashing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestSum_KnownDigests(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "hello.txt", "hello\n")

	// printf 'hello\n' | sha256sum / md5sum / sha1sum
	cases := map[string]string{
		"sha256": "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03",
		"md5":    "b1946ac92492d2347c6235b4d2611184",
		"sha1":   "f572d396fae9206628714fb2ce00f72e94f2258f",
	}
	for algo, want := range cases {
		got, err := Sum(p, algo, 0)
		if err != nil {
			t.Fatalf("Sum(%s): %v", algo, err)
		}
		if got != want {
			t.Fatalf("Sum(%s)=%s want %s", algo, got, want)
		}
	}
}

func TestSum_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "empty", "")

	got, err := Sum(p, "sha256", 0)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	// Well-known sha256 of empty input.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Fatalf("empty digest=%s want %s", got, want)
	}
}

func TestSum_ChangeSensitivity(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a", "content-A")
	b := writeTemp(t, dir, "b", "content-B")

	ha, err := Sum(a, "sha256", 0)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := Sum(b, "sha256", 0)
	if err != nil {
		t.Fatal(err)
	}
	if ha == hb {
		t.Fatal("one-byte difference produced identical digests")
	}
}

func TestSum_ChunkSizeDoesNotAffectDigest(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "big", strings.Repeat("x", 200_000))

	full, err := Sum(p, "sha512", 0)
	if err != nil {
		t.Fatal(err)
	}
	tiny, err := Sum(p, "sha512", 7)
	if err != nil {
		t.Fatal(err)
	}
	if full != tiny {
		t.Fatalf("digest changed with chunk size: %s vs %s", full, tiny)
	}
}

func TestSum_AllAlgorithmsLowercaseHex(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "f", "payload")
	for _, algo := range Algorithms() {
		got, err := Sum(p, algo, 0)
		if err != nil {
			t.Fatalf("Sum(%s): %v", algo, err)
		}
		if got == "" || got != strings.ToLower(got) {
			t.Fatalf("Sum(%s) not lowercase hex: %q", algo, got)
		}
	}
}

func TestSum_UnsupportedAlgorithm(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "f", "x")
	_, err := Sum(p, "crc32", 0)
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

func TestSum_Unreadable(t *testing.T) {
	dir := t.TempDir()

	if _, err := Sum(filepath.Join(dir, "missing"), "sha256", 0); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("missing file: expected ErrUnreadable, got %v", err)
	}
	if _, err := Sum(dir, "sha256", 0); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("directory: expected ErrUnreadable, got %v", err)
	}
}
