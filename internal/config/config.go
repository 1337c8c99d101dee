package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/monoscope/internal/commitmsg"
	"github.com/gorewood/monoscope/internal/output"
	"github.com/gorewood/monoscope/internal/scope"
)

// RepoFileName is the per-repository config file, looked up at the top of
// the working tree.
const RepoFileName = ".monoscope.yaml"

// Config is the content of a monoscope config file.
type Config struct {
	// Rules replaces the built-in rule table when non-empty.
	Rules []scope.RuleConfig `yaml:"rules,omitempty"`
	// Ignore lists doublestar globs for paths that never produce a scope.
	Ignore []string     `yaml:"ignore,omitempty"`
	Ticket TicketConfig `yaml:"ticket,omitempty"`

	// Source is the file the config was read from, "" for defaults.
	Source string `yaml:"-"`
}

// TicketConfig controls the ticket step of the hook.
type TicketConfig struct {
	Enabled bool   `yaml:"enabled"`
	Pattern string `yaml:"pattern,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Ticket: TicketConfig{Pattern: commitmsg.DefaultTicketPattern},
	}
}

// RepoFile returns the per-repository config path for a working tree.
func RepoFile(workTree string) string {
	return filepath.Join(workTree, RepoFileName)
}

// Load reads the first candidate path that exists. Empty candidates are
// skipped; if none exists the defaults are returned.
func Load(candidates ...string) (*Config, error) {
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Default(), nil
}

// LoadFile reads and validates one config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, output.NewSystemErrorWithCause("reading config "+path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, output.NewUserErrorWithCause("invalid config "+path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes YAML config content. Unknown keys are rejected so typos
// in rule fields surface instead of silently falling back to defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	if cfg.Ticket.Pattern == "" {
		cfg.Ticket.Pattern = commitmsg.DefaultTicketPattern
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that rules, ignore globs and the ticket pattern compile.
func (c *Config) Validate() error {
	if _, err := c.ScopeRules(); err != nil {
		return err
	}
	if err := scope.ValidateIgnore(c.Ignore); err != nil {
		return err
	}
	if _, err := c.TicketPattern(); err != nil {
		return err
	}
	return nil
}

// ScopeRules returns the configured rule table, or the built-in one.
func (c *Config) ScopeRules() (scope.Rules, error) {
	if len(c.Rules) == 0 {
		return scope.DefaultRules(), nil
	}
	rules, err := scope.CompileRules(c.Rules)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return rules, nil
}

// TicketPattern compiles the ticket pattern.
func (c *Config) TicketPattern() (*regexp.Regexp, error) {
	pattern := c.Ticket.Pattern
	if pattern == "" {
		pattern = commitmsg.DefaultTicketPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("ticket.pattern: %w", err)
	}
	return re, nil
}

// LoadForWorkTree loads the config for a working tree. An explicit path
// (the --config flag) must exist; otherwise the repository file and then
// the global file are tried.
func LoadForWorkTree(explicit, workTree string) (*Config, error) {
	if explicit != "" {
		cfg, err := LoadFile(explicit)
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewUserErrorWithCause("config file not found: "+explicit, err)
		}
		return cfg, err
	}

	repoFile := ""
	if workTree != "" {
		repoFile = RepoFile(workTree)
	}
	return Load(repoFile, GlobalFile())
}
