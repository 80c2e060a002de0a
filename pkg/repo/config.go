package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Repository settings live in .grit/config as INI, keyed as
// "section.key" (e.g. "user.name", "user.email").

func (r *Repo) configPath() string {
	return filepath.Join(r.GritDir, "config")
}

func (r *Repo) loadConfig() (*ini.File, error) {
	cfg, err := ini.Load(r.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return ini.Empty(), nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// ConfigGet returns the value for a "section.key" config key. A
// missing key yields an empty string and no error.
func (r *Repo) ConfigGet(key string) (string, error) {
	section, name, err := splitConfigKey(key)
	if err != nil {
		return "", err
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return "", err
	}
	if !cfg.Section(section).HasKey(name) {
		return "", nil
	}
	return cfg.Section(section).Key(name).String(), nil
}

// ConfigSet writes a "section.key" config value and saves the file.
func (r *Repo) ConfigSet(key, value string) error {
	section, name, err := splitConfigKey(key)
	if err != nil {
		return err
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}
	cfg.Section(section).Key(name).SetValue(value)
	if err := cfg.SaveTo(r.configPath()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// UserIdent returns the configured user.name and user.email, falling
// back to $USER and a placeholder address so commit construction
// always has an identity.
func (r *Repo) UserIdent() (name, email string) {
	name, _ = r.ConfigGet("user.name")
	email, _ = r.ConfigGet("user.email")

	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "unknown"
	}
	if email == "" {
		email = name + "@localhost"
	}
	return name, email
}

func splitConfigKey(key string) (section, name string, err error) {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return "", "", fmt.Errorf("invalid config key %q (want section.key)", key)
	}
	return section, name, nil
}
