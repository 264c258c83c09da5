// Package config exposes strongly typed application configuration structs
// loaded from YAML, plus the two JSON documents the trading session needs
// (pair list and wallet credentials).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Dex defines network endpoints and defaults for on-chain execution.
type Dex struct {
	RpcURL      string `yaml:"rpc_url"`
	Commitment  string `yaml:"commitment"`   // processed|confirmed|finalized
	JupiterBase string `yaml:"jupiter_base"` // https://quote-api.jup.ag
	SlippageBps int    `yaml:"slippage_bps"`
}

// DexScreener configures the pair-metadata lookup service.
type DexScreener struct {
	BaseURL string `yaml:"base_url"`
	Chain   string `yaml:"chain"`
}

// Files points at the JSON documents loaded at startup.
type Files struct {
	Pairs       string `yaml:"pairs"`
	Credentials string `yaml:"credentials"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App         App         `yaml:"app"`
	Dex         Dex         `yaml:"dex"`
	DexScreener DexScreener `yaml:"dexscreener"`
	Files       Files       `yaml:"files"`
}

const defaultSlippageBps = 50

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if config.Dex.SlippageBps <= 0 {
		config.Dex.SlippageBps = defaultSlippageBps
	}
	return &config, nil
}
