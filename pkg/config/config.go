// Package config provides configuration loading for serverconfig.
// Configuration lives at ~/.config/serverconfig/config.yaml and can be
// overridden with SERVERCONFIG_* environment variables. Everything the tool
// touches on disk (catalog file, log directory) is explicit configuration
// passed into the components that use it.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nigeyuk/serverConfig/pkg/errors"
)

const (
	// ConfigDirName is the config directory under ~/.config.
	ConfigDirName = "serverconfig"
	// ConfigFileName is the main config file name.
	ConfigFileName = "config.yaml"
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "SERVERCONFIG"
)

// Config holds all serverconfig settings.
type Config struct {
	// CatalogPath is the package catalog file.
	CatalogPath string `yaml:"catalog_path" mapstructure:"catalog_path"`

	// LogDir is the directory for run log files.
	LogDir string `yaml:"log_dir" mapstructure:"log_dir"`

	// AptCommand is the package manager binary to invoke.
	AptCommand string `yaml:"apt_command" mapstructure:"apt_command"`

	// SSHPort is the port configured during SSH hardening.
	SSHPort int `yaml:"ssh_port" mapstructure:"ssh_port"`

	// SwapSizeGB is the default swap file size in gigabytes.
	SwapSizeGB int `yaml:"swap_size_gb" mapstructure:"swap_size_gb"`

	// Swappiness is written to vm.swappiness during swap setup.
	Swappiness int `yaml:"swappiness" mapstructure:"swappiness"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CatalogPath: "/etc/serverconfig/packages.list",
		LogDir:      "/var/log/serverconfig",
		AptCommand:  "apt-get",
		SSHPort:     22,
		SwapSizeGB:  2,
		Swappiness:  10,
	}
}

// Load reads configuration with the precedence: defaults, config file (if it
// exists), SERVERCONFIG_* environment variables. A missing config file is not
// an error; a malformed one is.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("catalog_path", defaults.CatalogPath)
	v.SetDefault("log_dir", defaults.LogDir)
	v.SetDefault("apt_command", defaults.AptCommand)
	v.SetDefault("ssh_port", defaults.SSHPort)
	v.SetDefault("swap_size_gb", defaults.SwapSizeGB)
	v.SetDefault("swappiness", defaults.Swappiness)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := explicitPath
	if path == "" {
		defaultPath, err := Path()
		if err == nil {
			path = defaultPath
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.WrapWithSuggestion(err, errors.ErrConfig,
					"failed to read config file "+path,
					"check the file is valid YAML")
			}
		} else if explicitPath != "" {
			return nil, errors.WrapWithSuggestion(err, errors.ErrConfig,
				"config file not found: "+explicitPath,
				"check the path or run 'serverconfig config init'")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values no component could use.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return errors.New(errors.ErrConfig, "catalog_path must not be empty", "")
	}
	if c.AptCommand == "" {
		return errors.New(errors.ErrConfig, "apt_command must not be empty", "")
	}
	if c.SSHPort < 1 || c.SSHPort > 65535 {
		return errors.Newf(errors.ErrConfig, "ssh_port %d out of range [1,65535]", c.SSHPort)
	}
	if c.SwapSizeGB < 1 {
		return errors.Newf(errors.ErrConfig, "swap_size_gb %d must be at least 1", c.SwapSizeGB)
	}
	if c.Swappiness < 0 || c.Swappiness > 100 {
		return errors.Newf(errors.ErrConfig, "swappiness %d out of range [0,100]", c.Swappiness)
	}
	return nil
}

// Path returns the default config file path (~/.config/serverconfig/config.yaml).
// Respects XDG_CONFIG_HOME if set.
func Path() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName, ConfigFileName), nil
}

// WriteDefault writes the default configuration as YAML to the given path,
// creating parent directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrConfig,
			"config file already exists: "+path,
			"remove it first if you want to start over")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "failed to create config directory")
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.Wrap(err, errors.ErrConfig, "failed to marshal default config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "failed to write config file")
	}

	return nil
}
