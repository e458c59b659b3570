package types

import (
	"sort"
	"time"
)

// FileRecord is one entry of an inventory: the digest and stat metadata of a
// single regular file, keyed by its root-relative path.
type FileRecord struct {
	Hash         string    `json:"hash"`
	SizeBytes    int64     `json:"size_bytes"`
	ModifiedTime time.Time `json:"modified_time"`
}

// Inventory is the result of one scan: a mapping of root-relative slash paths
// to FileRecords plus scan metadata. Every scan produces a fresh Inventory;
// an Inventory is never mutated after the scan that built it returns.
type Inventory struct {
	Root      string                `json:"root_directory"`
	Algorithm string                `json:"algorithm"`
	CreatedAt time.Time             `json:"created_at"`
	GitCommit string                `json:"git_commit,omitempty"`
	GitBranch string                `json:"git_branch,omitempty"`
	Files     map[string]FileRecord `json:"files"`
}

// Count returns the number of tracked files.
func (inv *Inventory) Count() int { return len(inv.Files) }

// Paths returns every tracked relative path in lexicographic order.
func (inv *Inventory) Paths() []string {
	out := make([]string, 0, len(inv.Files))
	for p := range inv.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// SkippedFile records a path the scanner could not (or would not) hash, with
// the reason. Skips never abort a scan; they are carried alongside the
// inventory so reports can say the inventory is incomplete.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ChangeReport classifies the difference between two inventories. The four
// primary lists partition the union of both path sets; Touched and Excluded
// are informational overlays and never reclassify an entry. All lists are
// sorted lexicographically.
type ChangeReport struct {
	Modified  []string `json:"modified"`
	Added     []string `json:"added"`
	Deleted   []string `json:"deleted"`
	Unchanged []string `json:"unchanged"`

	// Touched lists paths whose modified_time drifted while the hash stayed
	// equal. They remain in Unchanged; content is the sole authority.
	Touched []string `json:"touched,omitempty"`

	// Excluded lists paths present in the old inventory that the current
	// ignore rules now exclude. They are not deletions: the rule changed,
	// not the filesystem.
	Excluded []string `json:"excluded,omitempty"`
}

// TotalChanges returns the number of entries that differ between the two
// inventories. Counts are always derived from the lists.
func (r *ChangeReport) TotalChanges() int {
	return len(r.Modified) + len(r.Added) + len(r.Deleted)
}

// HasChanges reports whether any drift was detected.
func (r *ChangeReport) HasChanges() bool { return r.TotalChanges() > 0 }
