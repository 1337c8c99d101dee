package scope

import (
	"fmt"
	"regexp"
)

// Rule maps paths matching Pattern to the scope produced by expanding
// Template against the match ($1 refers to the first capture group).
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Template string
}

// Rules is an ordered rule table; earlier rules take priority.
type Rules []Rule

// RuleConfig is the configuration-file form of a Rule.
type RuleConfig struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Match string `yaml:"match"          json:"match"`
	Scope string `yaml:"scope"          json:"scope"`
}

// DefaultRules returns the built-in rule table for a monorepo with web
// projects under web/projects and packages one level below the root.
func DefaultRules() Rules {
	return Rules{
		{
			Name:     "web-project",
			Pattern:  regexp.MustCompile(`^web/projects/([^\s/]+)/.*`),
			Template: "$1",
		},
		{
			Name:     "web-entry",
			Pattern:  regexp.MustCompile(`^web/([^\s/]+)$`),
			Template: "$1",
		},
		{
			Name:     "top-level-dir",
			Pattern:  regexp.MustCompile(`^([^\s/]+)/[^\s/]+[^/]$`),
			Template: "$1",
		},
		{
			Name:     "package",
			Pattern:  regexp.MustCompile(`^[^\s/]+/([^\s/]+)/.*`),
			Template: "$1",
		},
		{
			Name:     "root",
			Pattern:  regexp.MustCompile(`^([^/]+)$`),
			Template: "root",
		},
	}
}

// CompileRules builds a rule table from configuration entries, keeping
// their order.
func CompileRules(configs []RuleConfig) (Rules, error) {
	rules := make(Rules, 0, len(configs))
	for i, cfg := range configs {
		name := cfg.Name
		if name == "" {
			name = fmt.Sprintf("rule %d", i+1)
		}
		if cfg.Match == "" {
			return nil, fmt.Errorf("%s: match is required", name)
		}
		if cfg.Scope == "" {
			return nil, fmt.Errorf("%s: scope is required", name)
		}
		pattern, err := regexp.Compile(cfg.Match)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rules = append(rules, Rule{Name: name, Pattern: pattern, Template: cfg.Scope})
	}
	return rules, nil
}

// Resolve returns the scope for path from the first matching rule: the
// rule's template expanded against the match. Text of path outside the
// match never leaks into the scope, so rules need not be anchored at the
// end.
func (r Rules) Resolve(path string) (scope string, rule string, ok bool) {
	for _, rule := range r {
		loc := rule.Pattern.FindStringSubmatchIndex(path)
		if loc == nil {
			continue
		}
		return string(rule.Pattern.ExpandString(nil, rule.Template, path, loc)), rule.Name, true
	}
	return "", "", false
}
