// Package report renders change reports and baseline summaries for humans.
// Machine-readable output is plain JSON and lives with the callers.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/driftwatch/driftwatch/internal/types"
)

// PrintOptions controls human-readable rendering.
type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	// ShowUnchanged lists unchanged paths too; off by default to keep large
	// reports readable.
	ShowUnchanged bool
}

var (
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	deletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // dim
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

func label(s string, style lipgloss.Style, noColor bool) string {
	if noColor {
		return s
	}
	return style.Render(s)
}

// PrintReport writes the classified drift, one path per line, grouped and
// sorted, then a summary footer. A report with skipped entries always says
// the inventory is incomplete.
func PrintReport(w io.Writer, r *types.ChangeReport, skipped []types.SkippedFile, opts PrintOptions) {
	if !r.HasChanges() {
		fmt.Fprintln(w, "No changes detected ✅")
	} else {
		for _, p := range r.Modified {
			fmt.Fprintf(w, "%s  %s\n", label("modified", modifiedStyle, opts.NoColor), p)
		}
		for _, p := range r.Added {
			fmt.Fprintf(w, "%s  %s\n", label("added   ", addedStyle, opts.NoColor), p)
		}
		for _, p := range r.Deleted {
			fmt.Fprintf(w, "%s  %s\n", label("deleted ", deletedStyle, opts.NoColor), p)
		}
	}
	for _, p := range r.Excluded {
		fmt.Fprintf(w, "%s  %s (now ignored, was in baseline)\n", label("excluded", infoStyle, opts.NoColor), p)
	}
	for _, p := range r.Touched {
		fmt.Fprintf(w, "%s  %s (mtime drift, content unchanged)\n", label("touched ", infoStyle, opts.NoColor), p)
	}
	if opts.ShowUnchanged {
		for _, p := range r.Unchanged {
			fmt.Fprintf(w, "%s  %s\n", label("ok      ", infoStyle, opts.NoColor), p)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Changes: %d (modified: %d, added: %d, deleted: %d)  unchanged: %d\n",
		r.TotalChanges(), len(r.Modified), len(r.Added), len(r.Deleted), len(r.Unchanged))
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
	if len(skipped) > 0 {
		fmt.Fprintf(w, "Skipped %d entries, the inventory is incomplete:\n", len(skipped))
		for _, s := range skipped {
			fmt.Fprintf(w, "  %s (%s)\n", s.Path, s.Reason)
		}
	}
}

// PrintBaseline writes a baseline's metadata and its file listing as a table,
// hashes truncated for readability.
func PrintBaseline(w io.Writer, inv *types.Inventory, opts PrintOptions) {
	title := "Baseline"
	if !opts.NoColor {
		title = headerStyle.Render(title)
	}
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "Root:      %s\n", inv.Root)
	fmt.Fprintf(w, "Algorithm: %s\n", inv.Algorithm)
	fmt.Fprintf(w, "Created:   %s\n", inv.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Files:     %d\n", inv.Count())
	if inv.GitCommit != "" {
		ref := inv.GitCommit
		if inv.GitBranch != "" {
			ref = inv.GitBranch + "@" + ref
		}
		fmt.Fprintf(w, "Git:       %s\n", ref)
	}
	fmt.Fprintln(w)

	tbl := tablewriter.NewWriter(w)
	tbl.Header("Path", "Hash", "Size", "Modified")
	for _, p := range inv.Paths() {
		rec := inv.Files[p]
		_ = tbl.Append([]string{p, truncateHash(rec.Hash), strconv.FormatInt(rec.SizeBytes, 10), rec.ModifiedTime.Format(time.RFC3339)})
	}
	_ = tbl.Render()
}

func truncateHash(h string) string {
	if len(h) <= 16 {
		return h
	}
	return h[:16] + "…"
}
