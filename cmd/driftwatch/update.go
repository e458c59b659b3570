package driftwatch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftwatch/driftwatch/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update driftwatch to the latest GitHub release",
		RunE: func(_ *cobra.Command, _ []string) error {
			if latest, newer, err := update.Check(version, false); err == nil && !newer {
				fmt.Println("Already up to date.")
				return nil
			} else if newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "updating to v%s...\n", latest)
			}
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("update error: %w", err)
			}
			fmt.Println("Updated.")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
