package driftwatch

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/driftwatch/driftwatch/internal/hashing"
)

var (
	flagHashAlgorithm string
	flagHashChunkSize int
	flagHashCopy      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "hash <file>",
		Short: "Compute the digest of a single file",
		Args:  cobra.ExactArgs(1),
		RunE:  runHash,
		Example: `
# Default algorithm
driftwatch hash ./main.go

# Pick an algorithm and copy the digest to the clipboard
driftwatch hash -a blake2 --copy ./release.tar.gz
`,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagHashAlgorithm, "algorithm", "a", hashing.DefaultAlgorithm, "hash algorithm: "+strings.Join(hashing.Algorithms(), "|"))
	cmd.Flags().IntVar(&flagHashChunkSize, "chunk-size", 0, "read chunk size in bytes (0 = 64KiB)")
	cmd.Flags().BoolVar(&flagHashCopy, "copy", false, "copy the digest to the clipboard")
}

func runHash(_ *cobra.Command, args []string) error {
	digest, err := hashing.Sum(args[0], flagHashAlgorithm, flagHashChunkSize)
	if err != nil {
		return fmt.Errorf("hash error: %w", err)
	}
	fmt.Printf("%s  %s\n", digest, args[0])
	if flagHashCopy {
		if err := clipboard.WriteAll(digest); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "clipboard warning:", err)
		}
	}
	return nil
}
