// Package hashing computes file content digests for baseline records. Files
// are read in fixed-size chunks so memory stays bounded regardless of file
// size; the chunk size tunes throughput, never the digest.
package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"sort"

	xxhash "github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = "sha256"

// DefaultChunkSize is the read buffer size (64 KiB).
const DefaultChunkSize = 64 * 1024

var (
	// ErrUnsupportedAlgorithm is returned for algorithm names outside
	// Algorithms().
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

	// ErrUnreadable is returned when the target does not exist, is not a
	// regular file, or cannot be opened.
	ErrUnreadable = errors.New("file unreadable")
)

var constructors = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
	"blake2": func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	},
	// xxh64 is not cryptographic; offered for fast drift checks where tamper
	// resistance is not required.
	"xxh64": func() hash.Hash { return xxhash.New() },
}

// Algorithms returns the supported algorithm names, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Supported reports whether name is a known algorithm.
func Supported(name string) bool {
	_, ok := constructors[name]
	return ok
}

// New returns a fresh hash for the named algorithm.
func New(name string) (hash.Hash, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return ctor(), nil
}

// Sum computes the lowercase hex digest of the file at path using the named
// algorithm, reading in chunkSize blocks (DefaultChunkSize when <= 0). It has
// no side effects beyond reading the file and never retries on I/O errors.
func Sum(path, algorithm string, chunkSize int) (string, error) {
	h, err := New(algorithm)
	if err != nil {
		return "", err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	st, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if !st.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s: not a regular file", ErrUnreadable, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
