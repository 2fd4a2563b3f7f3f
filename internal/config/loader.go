package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LocalPath is the project-local config file checked after the user file.
const LocalPath = "configs/gridshooter.yaml"

// Load loads gridshooter configuration, applies environment overrides and
// validates the result.
// Search order: customPath -> ~/.gridshooter/config.yaml -> ./configs/gridshooter.yaml -> embedded default
//
// Files are decoded on top of Default, so a partial file only overrides the
// keys it names.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryFile(LocalPath); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Source = "embedded"
	return cfg, nil
}

// tryFile decodes path over Default. Unreadable or malformed files are
// skipped so the next location in the search order is tried.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	cfg.Source = path
	return cfg, true
}

// ParseEnv overlays GRIDSHOOTER_* environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridshooter", filename)
}
