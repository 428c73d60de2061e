package kushn

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreFileName is looked up in the processed root by ReadIgnoreFile.
const IgnoreFileName = ".kushnignore"

// Matcher decides whether a relative path is excluded from the manifest.
//
// Each raw rule compiles into two glob forms: a directory form (rule + "/**")
// matching a directory and everything beneath it, and a file form
// ("**/" + rule) matching the bare rule anywhere in the tree. Matching is
// case-sensitive. Rules are compiled once and read-only afterwards.
type Matcher struct {
	dirPatterns  []string
	filePatterns []string
}

// NewMatcher compiles raw ignore rules into a Matcher. Path separators in
// each rule are normalised to forward slashes before compiling. An invalid
// glob fails construction, before any traversal starts.
func NewMatcher(rules []string) (*Matcher, error) {
	m := &Matcher{}
	for _, rule := range rules {
		normalised := strings.ReplaceAll(rule, "\\", "/")
		if normalised == "" {
			continue
		}
		if !doublestar.ValidatePattern(normalised) {
			return nil, fmt.Errorf("%w: %q", ErrPatternSyntax, rule)
		}
		m.dirPatterns = append(m.dirPatterns, normalised+"/**")
		m.filePatterns = append(m.filePatterns, "**/"+normalised)
	}
	return m, nil
}

// ExcludesDir reports whether the directory at relPath matches a
// directory-form rule. The walk must not descend into an excluded directory.
// A doublestar matches zero or more path segments, so "skip/**" matches
// "skip" itself; that is what makes subtree pruning possible.
func (m *Matcher) ExcludesDir(relPath string) bool {
	return matchAny(m.dirPatterns, filepath.ToSlash(relPath))
}

// ExcludesFile reports whether the file at relPath is excluded, either by a
// directory-form rule (it lives inside an excluded subtree) or by a
// file-form rule.
func (m *Matcher) ExcludesFile(relPath string) bool {
	rel := filepath.ToSlash(relPath)
	return matchAny(m.dirPatterns, rel) || matchAny(m.filePatterns, rel)
}

// HasRules reports whether any rules were compiled.
func (m *Matcher) HasRules() bool {
	return len(m.filePatterns) > 0
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// Patterns were validated at construction.
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}

// ReadIgnoreFile reads ignore rules from the .kushnignore file in root, one
// rule per line, whitespace trimmed. Blank lines and lines starting with #
// are skipped. A missing file yields no rules.
func ReadIgnoreFile(root string) ([]string, error) {
	path := filepath.Join(root, IgnoreFileName)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ignore file %s: %w", path, err)
	}
	defer file.Close()

	var rules []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	return rules, nil
}
