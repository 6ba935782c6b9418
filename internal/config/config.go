// Package config loads graphdb's startup configuration from a YAML file
// via spf13/viper. Settings are overridable by GRAPHDB_* env vars, which
// take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config holds the startup settings read before any database is opened.
type Config struct {
	// DataDir is the directory holding the registry file and every
	// database's companion files.
	DataDir string
	// RegistryFile is the registry's filename, relative to DataDir.
	RegistryFile string
	// CaseSensitive is the default `case_sensitive` query flag.
	CaseSensitive bool
	// CastNonStrings is the default `cast_non_strings` query flag.
	CastNonStrings bool
	// LockTimeout is loaded and validated as a duration but is not read
	// by the catalog: its lock is always acquired non-blocking and a busy
	// lock is reported at once.
	LockTimeout time.Duration
}

// Defaults returns the configuration used when no file or env override is
// present.
func Defaults() Config {
	return Config{
		DataDir:        ".",
		RegistryFile:   "registry.json",
		CaseSensitive:  false,
		CastNonStrings: false,
		LockTimeout:    2 * time.Second,
	}
}

// Load reads path (a graphdb.yaml file) if it exists, layers GRAPHDB_*
// environment variables on top, and returns the resolved Config. A
// missing file is not an error: Load falls back to Defaults() and still
// applies env overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GRAPHDB")
	v.AutomaticEnv()

	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("registry_file", cfg.RegistryFile)
	v.SetDefault("case_sensitive", cfg.CaseSensitive)
	v.SetDefault("cast_non_strings", cfg.CastNonStrings)
	v.SetDefault("lock_timeout", cfg.LockTimeout.String())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	cfg.DataDir = v.GetString("data_dir")
	cfg.RegistryFile = v.GetString("registry_file")
	cfg.CaseSensitive = v.GetBool("case_sensitive")
	cfg.CastNonStrings = v.GetBool("cast_non_strings")
	lockTimeout, err := time.ParseDuration(v.GetString("lock_timeout"))
	if err != nil {
		return cfg, fmt.Errorf("config: lock_timeout: %w", err)
	}
	cfg.LockTimeout = lockTimeout

	return cfg, nil
}
