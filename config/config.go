package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/meanrev/sim"
)

// Config represents the complete backtest configuration
type Config struct {
	Strategy   StrategyConfig   `json:"strategy" yaml:"strategy"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

// StrategyConfig contains the oscillator and state machine parameters
type StrategyConfig struct {
	Window       int     `json:"window" yaml:"window"`
	Oversold     float64 `json:"oversold" yaml:"oversold"`
	Overbought   float64 `json:"overbought" yaml:"overbought"`
	StopSigmas   float64 `json:"stop_sigmas" yaml:"stop_sigmas"`
	TakeSigmas   float64 `json:"take_sigmas" yaml:"take_sigmas"`
	TrailingStop float64 `json:"trailing_stop" yaml:"trailing_stop"`
}

// SimulationConfig contains run parameters
type SimulationConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile  string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	CapitalFile string `json:"capital_file,omitempty" yaml:"capital_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// SimConfig converts the strategy section into the engine's thresholds.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Oversold:     c.Strategy.Oversold,
		Overbought:   c.Strategy.Overbought,
		StopSigmas:   c.Strategy.StopSigmas,
		TakeSigmas:   c.Strategy.TakeSigmas,
		TrailingStop: c.Strategy.TrailingStop,
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Strategy.Window <= 0 {
		return fmt.Errorf("strategy.window must be positive")
	}
	if c.Strategy.Oversold < 0 || c.Strategy.Oversold > 100 {
		return fmt.Errorf("strategy.oversold must be between 0 and 100")
	}
	if c.Strategy.Overbought < 0 || c.Strategy.Overbought > 100 {
		return fmt.Errorf("strategy.overbought must be between 0 and 100")
	}
	if c.Strategy.Oversold >= c.Strategy.Overbought {
		return fmt.Errorf("strategy.oversold must be below strategy.overbought")
	}
	if c.Strategy.StopSigmas <= 0 {
		return fmt.Errorf("strategy.stop_sigmas must be positive")
	}
	if c.Strategy.TakeSigmas <= 0 {
		return fmt.Errorf("strategy.take_sigmas must be positive")
	}
	if c.Strategy.TrailingStop <= 0 || c.Strategy.TrailingStop >= 1 {
		return fmt.Errorf("strategy.trailing_stop must be between 0 and 1")
	}
	if c.Simulation.InitialCapital <= 0 {
		return fmt.Errorf("simulation.initial_capital must be positive")
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.CapitalFile == "" {
			return fmt.Errorf("journal trades_file and capital_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Strategy: StrategyConfig{
			Window:       14,
			Oversold:     30,
			Overbought:   70,
			StopSigmas:   2,
			TakeSigmas:   5,
			TrailingStop: 0.02,
		},
		Simulation: SimulationConfig{
			InitialCapital: 1000,
		},
		Journal: JournalConfig{
			Type:        "csv",
			TradesFile:  "./trades.csv",
			CapitalFile: "./capital.csv",
		},
	}
}
