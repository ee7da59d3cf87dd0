package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the workspace configuration file.
const FileName = "spendmap.yaml"

// Config represents the top-level spendmap.yaml configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Statement StatementConfig `yaml:"statement"`
	Git       GitConfig       `yaml:"git"`
	Log       LogConfig       `yaml:"log"`
}

// StoreConfig selects where the Name→Category mappings live.
type StoreConfig struct {
	Backend string `yaml:"backend"` // csv, sqlite or memory
	Path    string `yaml:"path"`    // relative paths resolve against the workspace
}

// StatementConfig describes the bank export format.
type StatementConfig struct {
	HeaderTokens       []string `yaml:"header_tokens"`
	DateColumn         string   `yaml:"date_column"`
	RemarksColumn      string   `yaml:"remarks_column"`
	DebitColumn        string   `yaml:"debit_column"`
	MaxTrailingMissing int      `yaml:"max_trailing_missing"`
	DateLayouts        []string `yaml:"date_layouts,omitempty"` // Go layouts, day first
}

// GitConfig controls committing the mapping store after a save.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a spendmap.yaml file from disk. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "csv",
			Path:    "known_recipients.csv",
		},
		Statement: StatementConfig{
			HeaderTokens:       []string{"Date", "Remarks"},
			DateColumn:         "Date",
			RemarksColumn:      "Remarks",
			DebitColumn:        "Debit",
			MaxTrailingMissing: 2,
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "spendmap",
			AuthorEmail: "spendmap@localhost",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Store.Backend {
	case "csv", "sqlite", "memory":
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be one of csv, sqlite, memory", c.Store.Backend))
	}
	if c.Store.Backend != "memory" && c.Store.Path == "" {
		problems = append(problems, "store path cannot be empty")
	}
	if len(c.Statement.HeaderTokens) == 0 {
		problems = append(problems, "statement header_tokens cannot be empty")
	}
	for name, col := range map[string]string{
		"date_column":    c.Statement.DateColumn,
		"remarks_column": c.Statement.RemarksColumn,
		"debit_column":   c.Statement.DebitColumn,
	} {
		if strings.TrimSpace(col) == "" {
			problems = append(problems, fmt.Sprintf("statement %s cannot be empty", name))
		}
	}
	if c.Statement.MaxTrailingMissing < 0 {
		problems = append(problems, "statement max_trailing_missing cannot be negative")
	}
	if c.Git.AutoCommit && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		problems = append(problems, "git author_name and author_email are required when auto_commit is on")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
