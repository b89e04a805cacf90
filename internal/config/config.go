// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"picasso-cli/internal/hostcli"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "picasso"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"

	// EnvPrefix namespaces the plugin's own environment variables. The bare
	// PICASSO_ prefix is taken: that is the Tutor-side naming convention for
	// package declarations.
	EnvPrefix = "PICASSO_CLI"

	// tutorRootEnv is the environment variable Tutor itself honors for the
	// project root.
	tutorRootEnv = "TUTOR_ROOT"
)

// configDirOverride allows tests to redirect the config directory.
var configDirOverride = ""

type (
	// Config holds the plugin's own settings.
	Config struct {
		// GitBinary is the git executable used for cloning.
		GitBinary string `mapstructure:"git_binary"`
		// TutorBinary is the tutor executable used for version queries and
		// mount registration.
		TutorBinary string `mapstructure:"tutor_binary"`
		// UI groups presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables verbose output by default.
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the settings used when no config file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		GitBinary:   hostcli.DefaultGitBinary,
		TutorBinary: hostcli.DefaultTutorBinary,
	}
}

// SetConfigDirOverride redirects the config directory; tests use this to
// avoid touching the real user configuration.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// ConfigDir returns the picasso configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the plugin settings: defaults, then the optional config file,
// then PICASSO_CLI_* environment variables. A missing config file is not an
// error; an unreadable or malformed one is.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("git_binary", defaults.GitBinary)
	v.SetDefault("tutor_binary", defaults.TutorBinary)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	cfgDir, err := ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	v.AddConfigPath(cfgDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// ConfigFilePath returns the location Load reads the settings file from.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// TutorRoot resolves the Tutor project root. Precedence: the --root flag
// value, then $TUTOR_ROOT, then Tutor's own default of ~/.local/share/tutor.
func TutorRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(tutorRootEnv); env != "" {
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "tutor"), nil
}
