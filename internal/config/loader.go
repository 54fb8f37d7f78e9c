package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadVoidrun loads the simulation tuning.
// Search order: customPath -> ~/.voidrun/configs/voidrun.yaml -> ./configs/voidrun.yaml -> embedded default
//
// Files are decoded over the built-in defaults, so a file only needs the keys
// it changes. The result is validated before it is returned.
func LoadVoidrun(customPath string) (VoidrunConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return VoidrunConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseVoidrun(data)
		if err != nil {
			return VoidrunConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("voidrun.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseVoidrun(data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "voidrun.yaml")); err == nil {
		if cfg, err := parseVoidrun(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseVoidrun(defaultVoidrunYAML)
	if err != nil {
		return DefaultVoidrunConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// parseVoidrun decodes YAML over the built-in defaults. Weapon entries are
// merged field by field with the default weapon of the same id.
func parseVoidrun(data []byte) (VoidrunConfig, error) {
	cfg := DefaultVoidrunConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return VoidrunConfig{}, err
	}

	var raw struct {
		Weapons map[string]yaml.Node `yaml:"weapons"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return VoidrunConfig{}, err
	}
	base := DefaultVoidrunConfig().Weapons
	for id, node := range raw.Weapons {
		w, ok := base[id]
		if !ok {
			continue
		}
		if err := node.Decode(&w); err != nil {
			return VoidrunConfig{}, fmt.Errorf("weapon %q: %w", id, err)
		}
		cfg.Weapons[id] = w
	}

	for id, w := range cfg.Weapons {
		if w.Name == "" {
			w.Name = id
		}
		if w.DamageMul == 0 {
			w.DamageMul = 1
		}
		cfg.Weapons[id] = w
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".voidrun", "configs", filename)
}
