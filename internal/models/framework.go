package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FrameworkSeed mirrors config/framework.yaml: the pillar/aspect definitions
// and both weight axes, loaded once at startup and upserted into the DB.

type FrameworkSeed struct {
	Pillars []PillarSeed `yaml:"pillars"`
}

type PillarSeed struct {
	Name    string       `yaml:"name"`
	Weight  float64      `yaml:"weight"` // pillar share of the overall score, 0-1
	Aspects []AspectSeed `yaml:"aspects"`
}

type AspectSeed struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"` // relative multiplier within the pillar, 0-100
}

// LoadFrameworkSeed reads and parses the competency framework file.
func LoadFrameworkSeed(path string) (*FrameworkSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read framework file: %w", err)
	}

	var seed FrameworkSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal framework YAML: %w", err)
	}

	return &seed, nil
}
