// Package ignore decides which paths are excluded from scanning. Rules use a
// gitignore syntax subset: `*`/`?`/`**` globs, trailing `/` for
// directory-only patterns, leading or embedded `/` to anchor a pattern to the
// scan root, `#` comments and blank lines. Negation (`!`) is deliberately not
// supported: a path matching any rule is ignored, which keeps rule order
// irrelevant and the matcher a pure value.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// IgnoreFileName is the conventional per-tree pattern file.
const IgnoreFileName = ".driftwatchignore"

// DefaultPatterns are always-on exclusions: version control metadata, OS
// cruft, common build/cache trees, and driftwatch's own artifacts.
func DefaultPatterns() []string {
	return []string{
		".git/",
		".svn/",
		".hg/",
		".vscode/",
		".idea/",
		"node_modules/",
		"__pycache__/",
		"venv/",
		".venv/",
		"*.pyc",
		"*.pyo",
		".DS_Store",
		"Thumbs.db",
		"*.log",
		".env",
		"driftwatch.baseline.json",
		".driftwatch_audit.jsonl",
		IgnoreFileName,
	}
}

type rule struct {
	pattern  string
	dirOnly  bool
	anchored bool
}

// Matcher is a compiled, read-only rule set. The zero value matches nothing;
// copies are cheap and safe to share across traversal workers.
type Matcher struct {
	rules []rule
}

// New compiles the given patterns, in order. Blank lines and `#` comments are
// dropped. Invalid glob syntax surfaces as an error naming the pattern.
func New(patterns []string) (Matcher, error) {
	var m Matcher
	for _, raw := range patterns {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r := rule{pattern: line}
		if strings.HasSuffix(r.pattern, "/") {
			r.dirOnly = true
			r.pattern = strings.TrimSuffix(r.pattern, "/")
		}
		if strings.HasPrefix(r.pattern, "/") {
			r.pattern = strings.TrimPrefix(r.pattern, "/")
			r.anchored = true
		} else if strings.Contains(r.pattern, "/") {
			r.anchored = true
		}
		if r.pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(r.pattern) {
			return Matcher{}, fmt.Errorf("invalid ignore pattern %q", line)
		}
		m.rules = append(m.rules, r)
	}
	return m, nil
}

// Default compiles just the built-in patterns.
func Default() Matcher {
	m, err := New(DefaultPatterns())
	if err != nil {
		panic(err) // built-ins are static and valid
	}
	return m
}

// Load compiles the built-in patterns followed by the patterns read from the
// file at p. A missing file is not an error; the defaults still apply.
func Load(p string) (Matcher, error) {
	patterns := DefaultPatterns()
	custom, err := ReadPatternFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return New(patterns)
		}
		return Matcher{}, err
	}
	return New(append(patterns, custom...))
}

// ReadPatternFile returns the raw pattern lines of an ignore file, comments
// and blanks stripped.
func ReadPatternFile(p string) ([]string, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Len returns the number of compiled rules.
func (m Matcher) Len() int { return len(m.rules) }

// Match reports whether the root-relative slash path rel is ignored. A path
// is ignored when the path itself matches a rule, or when any parent
// directory does, so callers classifying baseline entries get the same answer
// the pruning walker would have produced.
func (m Matcher) Match(rel string, isDir bool) bool {
	rel = strings.Trim(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "/")
	if rel == "" || rel == "." {
		return false
	}
	segs := strings.Split(rel, "/")
	for _, r := range m.rules {
		if r.matches(rel, segs, isDir) {
			return true
		}
	}
	return false
}

func (r rule) matches(rel string, segs []string, isDir bool) bool {
	if r.anchored {
		if ok, _ := doublestar.Match(r.pattern, rel); ok {
			return !r.dirOnly || isDir
		}
		// A matching ancestor directory ignores the whole subtree.
		for i := 1; i < len(segs); i++ {
			prefix := strings.Join(segs[:i], "/")
			if ok, _ := doublestar.Match(r.pattern, prefix); ok {
				return true
			}
		}
		return false
	}
	for i, seg := range segs {
		ok, _ := doublestar.Match(r.pattern, seg)
		if !ok {
			continue
		}
		if i < len(segs)-1 {
			return true // matched an ancestor directory
		}
		return !r.dirOnly || isDir
	}
	return false
}
