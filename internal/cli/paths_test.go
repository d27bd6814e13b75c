package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigPathOverride(t *testing.T) {
	t.Setenv("PIVIEW_CONFIG", "/tmp/custom/config.toml")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if path != "/tmp/custom/config.toml" {
		t.Errorf("configPath() = %q, want the PIVIEW_CONFIG value", path)
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("PIVIEW_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	expected := filepath.Join("/tmp/xdg-config", appName, "config.toml")
	if path != expected {
		t.Errorf("configPath() = %q, want %q", path, expected)
	}
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("PIVIEW_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", appName, "config.toml")
	if path != expected {
		t.Errorf("configPath() = %q, want %q", path, expected)
	}
}

func TestTemplatesDirOverride(t *testing.T) {
	t.Setenv("PIVIEW_TEMPLATES", "/tmp/my-templates")

	dir, err := templatesDir()
	if err != nil {
		t.Fatalf("templatesDir() error: %v", err)
	}
	if dir != "/tmp/my-templates" {
		t.Errorf("templatesDir() = %q, want the PIVIEW_TEMPLATES value", dir)
	}
}

func TestTemplatesDirXDG(t *testing.T) {
	t.Setenv("PIVIEW_TEMPLATES", "")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := templatesDir()
	if err != nil {
		t.Fatalf("templatesDir() error: %v", err)
	}
	expected := filepath.Join("/tmp/xdg-data", appName, "templates")
	if dir != expected {
		t.Errorf("templatesDir() = %q, want %q", dir, expected)
	}
}

func TestTemplatesDirDefault(t *testing.T) {
	t.Setenv("PIVIEW_TEMPLATES", "")
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := templatesDir()
	if err != nil {
		t.Fatalf("templatesDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".local", "share", appName, "templates")
	if dir != expected {
		t.Errorf("templatesDir() = %q, want %q", dir, expected)
	}
}
