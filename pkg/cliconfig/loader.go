package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "userdesk"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".userdeskrc.yaml", ".userdeskrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .userdeskrc.yaml or .userdeskrc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return firstExisting(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // intentionally returning empty string when no config dir is available
		return "", nil
	}
	return firstExisting(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a CLIConfig from a YAML file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{
			Path:    path,
			Message: err.Error(),
		}
	}

	var keys map[string]interface{}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}
	cfg.SetFields = make(map[string]bool, len(keys))
	for k := range keys {
		cfg.SetFields[k] = true
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// LoadOptions controls LoadAll.
type LoadOptions struct {
	// ConfigFile, when set, replaces the global and local file lookup.
	// The file must exist.
	ConfigFile string

	// Environment overrides os.Environ for the env overlay. Used by tests.
	Environment map[string]string
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > local config > global config > defaults.
// Flags are applied by the caller on top of the result.
func LoadAll(opts LoadOptions) (*CLIConfig, error) {
	cfg := NewDefault()

	if opts.ConfigFile != "" {
		fileCfg, err := LoadConfigFile(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		MergeConfig(cfg, fileCfg, SourceFile)
	} else {
		if err := mergeFound(cfg, FindGlobalConfig, SourceGlobal); err != nil {
			return nil, err
		}
		if err := mergeFound(cfg, FindLocalConfig, SourceLocal); err != nil {
			return nil, err
		}
	}

	if err := LoadEnvConfig(cfg, opts.Environment); err != nil {
		return nil, err
	}

	return cfg, nil
}

func mergeFound(cfg *CLIConfig, find func() (string, error), source string) error {
	path, err := find()
	if err != nil || path == "" {
		//nolint:nilerr // a missing config file is not an error
		return nil
	}
	fileCfg, err := LoadConfigFile(path)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("invalid %s config: %w", source, err)
		}
		// Unreadable files are skipped like missing ones.
		return nil
	}
	MergeConfig(cfg, fileCfg, source)
	return nil
}
