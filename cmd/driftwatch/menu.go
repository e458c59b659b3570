package driftwatch

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/driftwatch/driftwatch/internal/tui"
)

var flagMenuPath string

func init() {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu (hash, create, check, show)",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(flagMenuPath)
			lcfg, gcfg := loadConfigs(abs)
			cfg := buildConfig(abs, "", "", 0, lcfg, gcfg)
			return tui.Run(cfg)
		},
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagMenuPath, "path", "p", ".", "directory to operate on")
}
