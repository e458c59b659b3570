// Package detector classifies the difference between two inventories. It is
// a pure function over immutable values: neither input is mutated and the
// report is rebuilt from scratch on every call.
package detector

import (
	"errors"
	"fmt"
	"sort"

	"github.com/driftwatch/driftwatch/internal/types"
)

// ErrAlgorithmMismatch is returned when the inventories were hashed with
// different algorithms. Comparing digests across algorithms would mark every
// unchanged file as modified, so this is a hard precondition unless the
// caller explicitly opts out.
var ErrAlgorithmMismatch = errors.New("hash algorithm mismatch")

// Options tunes a diff.
type Options struct {
	// AllowAlgorithmMismatch skips the algorithm guard. Only the
	// added/deleted portion of such a report is meaningful.
	AllowAlgorithmMismatch bool

	// Excluded, when set, reports whether a path is excluded by the current
	// ignore rules. Paths present only in the old inventory that it excludes
	// are listed as Excluded instead of Deleted: the rule changed, not the
	// tree.
	Excluded func(rel string) bool
}

// Diff compares old against new, keyed by relative path. Every path in the
// union of both inventories lands in exactly one of Modified, Added, Deleted
// or Unchanged; all lists come back sorted.
func Diff(old, new *types.Inventory, opts Options) (*types.ChangeReport, error) {
	if !opts.AllowAlgorithmMismatch && old.Algorithm != new.Algorithm {
		return nil, fmt.Errorf("%w: baseline uses %s, scan uses %s",
			ErrAlgorithmMismatch, old.Algorithm, new.Algorithm)
	}

	r := &types.ChangeReport{}
	for p, cur := range new.Files {
		prev, ok := old.Files[p]
		if !ok {
			r.Added = append(r.Added, p)
			continue
		}
		if prev.Hash != cur.Hash {
			r.Modified = append(r.Modified, p)
			continue
		}
		r.Unchanged = append(r.Unchanged, p)
		if !prev.ModifiedTime.Equal(cur.ModifiedTime) {
			r.Touched = append(r.Touched, p)
		}
	}
	for p := range old.Files {
		if _, ok := new.Files[p]; ok {
			continue
		}
		if opts.Excluded != nil && opts.Excluded(p) {
			r.Excluded = append(r.Excluded, p)
			continue
		}
		r.Deleted = append(r.Deleted, p)
	}

	sort.Strings(r.Modified)
	sort.Strings(r.Added)
	sort.Strings(r.Deleted)
	sort.Strings(r.Unchanged)
	sort.Strings(r.Touched)
	sort.Strings(r.Excluded)
	return r, nil
}
