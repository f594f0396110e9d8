package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DomainConfig holds the static warehouse lookup tables loaded from domain.yaml.
type DomainConfig struct {
	Version   int              `yaml:"version"`
	Locations []string         `yaml:"locations"`
	Positions []PositionConfig `yaml:"positions"`
	Blocks    []BlockConfig    `yaml:"blocks"`
	Distances []DistanceConfig `yaml:"distances"`
}

// PositionConfig associates a shelf position with its physical height.
type PositionConfig struct {
	ID     int `yaml:"id"`
	Height int `yaml:"height"`
}

// BlockConfig associates a block identifier with its weight.
type BlockConfig struct {
	ID     string `yaml:"id"`
	Weight int    `yaml:"weight"`
}

// DistanceConfig is the travel cost between two locations.
// Pairs are symmetric; each pair is listed once.
type DistanceConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Cost int    `yaml:"cost"`
}

// ScenariosConfig holds the scenario fixtures loaded from scenarios.yaml.
type ScenariosConfig struct {
	Version   int              `yaml:"version"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
}

// ScenarioConfig is one start/goal fixture with its default budget.
// Slot maps are location -> position -> block; omitted slots are empty.
type ScenarioConfig struct {
	ID     string                    `yaml:"id"`
	Budget int                       `yaml:"budget"`
	Start  map[string]map[int]string `yaml:"start"`
	Goal   map[string]map[int]string `yaml:"goal"`
}

func LoadDomainConfig(path string) (*DomainConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg DomainConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported domain.yaml version: %d", cfg.Version)
	}

	return &cfg, nil
}

func LoadScenariosConfig(path string) (*ScenariosConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ScenariosConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported scenarios.yaml version: %d", cfg.Version)
	}

	return &cfg, nil
}
