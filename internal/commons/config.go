package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"qrmenu/internal/config"
)

// LoadConfig reads a yaml config file. Deployments that prefer files
// over environment variables set CONFIG_PATH and get this loader;
// everything else goes through config.Load.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
