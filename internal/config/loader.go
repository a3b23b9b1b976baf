package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const factoryFile = "factory.yaml"

// LoadFactory loads the factory configuration.
// Search order: customPath -> ~/.factory/configs/factory.yaml -> ./configs/factory.yaml -> embedded default
//
// An explicit customPath must exist, parse and validate. Files found along
// the search path are skipped when they fail to parse or validate.
func LoadFactory(customPath string) (FactoryConfig, error) {
	if customPath != "" {
		cfg, err := readFactory(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", factoryFile)}
	if userCfgPath := userConfigPath(factoryFile); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		if cfg, err := readFactory(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	var cfg FactoryConfig
	if err := yaml.Unmarshal(defaultFactoryYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultFactoryConfig(), nil
	}
	return cfg, nil
}

func readFactory(path string) (FactoryConfig, error) {
	var cfg FactoryConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".factory", "configs", filename)
}
