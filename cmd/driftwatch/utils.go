package driftwatch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"golang.org/x/term"

	"github.com/driftwatch/driftwatch/internal/baseline"
	"github.com/driftwatch/driftwatch/internal/config"
	"github.com/driftwatch/driftwatch/internal/engine"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: driftwatch/driftwatch
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "driftwatch/driftwatch")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

// loadConfigs resolves global then local file config for a scan root.
// An explicit --config file replaces the local lookup entirely.
func loadConfigs(root string) (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if flagConfigFile != "" {
		if c, err := config.LoadFile(flagConfigFile); err == nil {
			local = c
		} else {
			_, _ = fmt.Fprintln(os.Stderr, "config warning:", err)
		}
		return local, global
	}
	if c, err := config.LoadLocal(root); err == nil {
		local = c
	}
	return local, global
}

// resolveNoColor merges the flag with file config and falls back to plain
// output when stdout is not a terminal.
func resolveNoColor(lcfg, gcfg config.FileConfig) bool {
	if pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

// buildConfig merges CLI flags over local and global file config.
func buildConfig(root, algorithm, ignoreFile string, chunkSize int, lcfg, gcfg config.FileConfig) engine.Config {
	return engine.Config{
		Root:       root,
		Algorithm:  pickString(algorithm, lcfg.Algorithm, gcfg.Algorithm),
		ChunkSize:  pickInt(chunkSize, lcfg.ChunkSize, gcfg.ChunkSize),
		Threads:    pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		IgnoreFile: pickString(ignoreFile, lcfg.IgnoreFile, gcfg.IgnoreFile),
	}
}

// resolveBaselinePath applies CLI > local > global precedence and anchors a
// relative path at the scan root.
func resolveBaselinePath(root, cli string, lcfg, gcfg config.FileConfig) string {
	p := pickString(cli, lcfg.BaselineFile, gcfg.BaselineFile)
	if p == "" {
		p = baseline.DefaultFileName
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return p
}

// stderrProgress reports hashing progress without knowing the total up front.
func stderrProgress() (fn func(), done func()) {
	hashed := 0
	fn = func() {
		hashed++
		if hashed%50 == 0 {
			_, _ = fmt.Fprintf(os.Stderr, "\rhashed %d files", hashed)
		}
	}
	done = func() {
		if hashed >= 50 {
			_, _ = fmt.Fprintf(os.Stderr, "\rhashed %d files\n", hashed)
		}
	}
	return fn, done
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
