package driftwatch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/driftwatch/driftwatch/internal/engine"
	"github.com/driftwatch/driftwatch/internal/report"
)

var (
	flagShowPath     string
	flagShowBaseline string
)

func init() {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display a baseline's metadata and file listing",
		RunE:  runShow,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagShowPath, "path", "p", ".", "directory the baseline belongs to")
	cmd.Flags().StringVarP(&flagShowBaseline, "baseline", "b", "", "baseline file path (default driftwatch.baseline.json in the root)")
}

func runShow(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagShowPath)
	lcfg, gcfg := loadConfigs(abs)
	basePath := resolveBaselinePath(abs, flagShowBaseline, lcfg, gcfg)

	if flagJSON {
		// dump the file as stored, highlighted when writing to a terminal
		b, err := os.ReadFile(basePath)
		if err != nil {
			return fmt.Errorf("show error: %w", err)
		}
		out := string(b)
		if !flagNoColor && term.IsTerminal(int(os.Stdout.Fd())) {
			out = highlightJSON(out)
		}
		_, _ = fmt.Fprint(os.Stdout, out)
		return nil
	}

	inv, err := engine.Describe(basePath)
	if err != nil {
		return fmt.Errorf("show error: %w", err)
	}
	report.PrintBaseline(os.Stdout, inv, report.PrintOptions{NoColor: resolveNoColor(lcfg, gcfg)})
	return nil
}

func highlightJSON(code string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
