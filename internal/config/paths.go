// ABOUTME: Standard filesystem locations for vtui configuration
// ABOUTME: Resolves the config file from the flag, VTUI_CONFIG, then ~/.vtui/config.yaml

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName = ".vtui"
	configName    = "config.yaml"

	// EnvConfig names the config file when no path is given explicitly.
	EnvConfig = "VTUI_CONFIG"
)

// GlobalDir returns the user-global config directory (~/.vtui/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configName)
}

// Path picks the config file to load: explicit wins, then $VTUI_CONFIG,
// then the global file.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return GlobalConfigFile()
}
