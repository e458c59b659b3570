package driftwatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftwatch/driftwatch/internal/audit"
)

var (
	flagHistoryPath  string
	flagHistoryLimit int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the audit trail of past checks",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagHistoryPath, "path", "p", ".", "directory whose audit trail to read")
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 0, "show at most N records (0 = all)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagHistoryPath)
	records, err := audit.NewLog(abs).History()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("No checks recorded yet.")
			return nil
		}
		return fmt.Errorf("history error: %w", err)
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for _, r := range records {
		fmt.Printf("%s  %-20s modified=%d added=%d deleted=%d unchanged=%d (%s, %s)\n",
			r.Timestamp.Format(time.RFC3339), r.CheckID,
			r.Modified, r.Added, r.Deleted, r.Unchanged,
			r.Algorithm, r.Duration)
	}
	if len(records) == 0 {
		fmt.Println("No checks recorded yet.")
	}
	return nil
}
