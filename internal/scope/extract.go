package scope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoScope means no changed path matched any rule.
var ErrNoScope = errors.New("no possible match, your rules must not be correctly set")

// Match records which rule decided the scope of one path.
type Match struct {
	Path  string `json:"path"`
	Scope string `json:"scope"`
	Rule  string `json:"rule"`
}

// Report is the detailed outcome of an extraction.
type Report struct {
	Scopes    Set      `json:"-"`
	Matches   []Match  `json:"matches"`
	Unmatched []string `json:"unmatched,omitempty"`
	Ignored   []string `json:"ignored,omitempty"`
}

type options struct {
	ignore []string
}

// Option configures Extract.
type Option func(*options)

// WithIgnore skips paths matching any of the doublestar glob patterns
// before rules are consulted.
func WithIgnore(patterns []string) Option {
	return func(o *options) {
		o.ignore = append(o.ignore, patterns...)
	}
}

// ValidateIgnore reports the first malformed glob pattern.
func ValidateIgnore(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return nil
}

// Extract returns the scopes of the newline-separated paths in
// modifiedFiles. It fails with ErrNoScope when the result would be empty,
// including when modifiedFiles holds no paths at all.
func Extract(modifiedFiles string, rules Rules, opts ...Option) (Set, error) {
	report, err := Explain(modifiedFiles, rules, opts...)
	if err != nil {
		return nil, err
	}
	return report.Scopes, nil
}

// Explain is Extract with per-path detail.
func Explain(modifiedFiles string, rules Rules, opts ...Option) (*Report, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	report := &Report{Scopes: Set{}}
	for _, line := range strings.Split(modifiedFiles, "\n") {
		path := strings.TrimSpace(line)
		if path == "" {
			continue
		}
		if ignored(path, o.ignore) {
			report.Ignored = append(report.Ignored, path)
			continue
		}

		scope, rule, ok := rules.Resolve(path)
		if !ok {
			report.Unmatched = append(report.Unmatched, path)
			continue
		}
		report.Scopes.Add(scope)
		report.Matches = append(report.Matches, Match{Path: path, Scope: scope, Rule: rule})
	}

	if report.Scopes.Len() == 0 {
		return report, ErrNoScope
	}
	return report, nil
}

func ignored(path string, patterns []string) bool {
	for _, p := range patterns {
		// Patterns are checked by ValidateIgnore when config is loaded;
		// a malformed one simply never matches here.
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}
