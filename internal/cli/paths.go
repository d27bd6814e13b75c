package cli

import (
	"os"
	"path/filepath"
)

// configPath returns the identifier-configuration file location.
// Resolution order: $PIVIEW_CONFIG, $XDG_CONFIG_HOME/piview/config.toml,
// ~/.config/piview/config.toml.
func configPath() (string, error) {
	if p := os.Getenv("PIVIEW_CONFIG"); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// templatesDir returns the directory scanned for saved template files.
// Resolution order: $PIVIEW_TEMPLATES, $XDG_DATA_HOME/piview/templates,
// ~/.local/share/piview/templates.
func templatesDir() (string, error) {
	if p := os.Getenv("PIVIEW_TEMPLATES"); p != "" {
		return p, nil
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "templates"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "templates"), nil
}
