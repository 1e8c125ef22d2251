package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ahmabora1/usvc/internal/registrar"
	"github.com/ahmabora1/usvc/internal/store"
	"github.com/ahmabora1/usvc/internal/systemd"
)

// ErrNoHome is returned when $HOME is unset or not a directory.
var ErrNoHome = errors.New("no $HOME found")

// HomeDir returns $HOME, which must name an existing directory.
func HomeDir() (string, error) {
	return homeDir(os.Getenv)
}

func homeDir(getenv func(string) string) (string, error) {
	home := getenv("HOME")
	if home == "" {
		return "", ErrNoHome
	}
	info, err := os.Stat(home)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrNoHome, home)
	}
	return home, nil
}

// SetDefaults registers the default for every key on v
func SetDefaults(v *viper.Viper) {
	def := registrar.DefaultOptions()

	v.SetDefault("unit_dir", "")
	v.SetDefault("systemctl", systemd.DefaultBinary)
	v.SetDefault("registrar.command", def.Command)
	v.SetDefault("registrar.port_args", def.PortArgs)
	v.SetDefault("registrar.add_args", def.AddArgs)
	v.SetDefault("registrar.remove_args", def.RemoveArgs)
	v.SetDefault("registrar.proxy_host", def.ProxyHost)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
}

// Load reads the configuration from the global viper instance
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v. A config file
// is optional; every key has a default.
func LoadFrom(v *viper.Viper) (*Config, error) {
	return load(v, os.Getenv)
}

func load(v *viper.Viper, getenv func(string) string) (*Config, error) {
	var cfg Config

	SetDefaults(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	resolveRefs(&cfg, getenv)

	home, err := homeDir(getenv)
	if err != nil {
		return nil, err
	}

	if cfg.UnitDir == "" {
		cfg.UnitDir = store.UserUnitDir(home)
	}
	cfg.UnitDir = ExpandPath(cfg.UnitDir, home)

	if cfg.Systemctl == "" {
		return nil, fmt.Errorf("systemctl is required")
	}
	if cfg.Registrar.Command == "" {
		return nil, fmt.Errorf("registrar.command is required")
	}

	return &cfg, nil
}

// RegistrarOptions converts the registrar settings for registrar.New
func (c *Config) RegistrarOptions() registrar.Options {
	return registrar.Options{
		Command:    c.Registrar.Command,
		PortArgs:   c.Registrar.PortArgs,
		AddArgs:    c.Registrar.AddArgs,
		RemoveArgs: c.Registrar.RemoveArgs,
		ProxyHost:  c.Registrar.ProxyHost,
	}
}

// ConfigPath returns the path of the loaded config file
func ConfigPath() string {
	return viper.ConfigFileUsed()
}
