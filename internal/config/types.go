package config

import (
	"os"
	"path/filepath"
)

// Config is the root configuration structure
type Config struct {
	UnitDir   string          `mapstructure:"unit_dir"`
	Systemctl string          `mapstructure:"systemctl"`
	Registrar RegistrarConfig `mapstructure:"registrar"`
	Log       LogConfig       `mapstructure:"log"`
}

// RegistrarConfig holds the domain registrar program and its sub-commands
type RegistrarConfig struct {
	Command    string   `mapstructure:"command"`
	PortArgs   []string `mapstructure:"port_args"`
	AddArgs    []string `mapstructure:"add_args"`
	RemoveArgs []string `mapstructure:"remove_args"`
	ProxyHost  string   `mapstructure:"proxy_host"`
}

// LogConfig holds diagnostic logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // auto, text, json
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path, home string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		home = h
	}
	return filepath.Join(home, path[1:])
}
