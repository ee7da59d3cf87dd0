package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. SPENDMAP_STORE_PATH.
const EnvPrefix = "SPENDMAP"

// Overlay keys. Flags and environment variables bound to these keys take
// precedence over spendmap.yaml.
const (
	KeyWorkspace    = "workspace"
	KeyConfig       = "config"
	KeyStoreBackend = "store.backend"
	KeyStorePath    = "store.path"
	KeyLogLevel     = "log.level"
)

// NewViper returns a viper instance reading SPENDMAP_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyWorkspace, ".")
	return v
}

// Resolve loads the workspace config and applies viper overrides on top.
// It returns the config together with the workspace directory.
func Resolve(v *viper.Viper) (*Config, string, error) {
	workspace := v.GetString(KeyWorkspace)
	if workspace == "" {
		workspace = "."
	}
	path := v.GetString(KeyConfig)
	if path == "" {
		path = filepath.Join(workspace, FileName)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, "", err
	}
	if s := v.GetString(KeyStoreBackend); s != "" {
		cfg.Store.Backend = s
	}
	if s := v.GetString(KeyStorePath); s != "" {
		cfg.Store.Path = s
	}
	if s := v.GetString(KeyLogLevel); s != "" {
		cfg.Log.Level = s
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return cfg, workspace, nil
}

// StorePath resolves the store path against the workspace directory.
func (c *Config) StorePath(workspace string) string {
	if c.Store.Path == "" || filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(workspace, c.Store.Path)
}
