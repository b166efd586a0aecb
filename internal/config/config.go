// Package config loads the YAML configuration for the songlangserver
// host: listen address, CORS origins, the PRNG seed, and the
// directory scripts are loaded from.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the songlangserver host configuration.
type Config struct {
	ListenAddr  string   `yaml:"listenAddr"`
	CorsOrigins []string `yaml:"corsOrigins"`
	RngSeed1    uint64   `yaml:"rngSeed1"`
	RngSeed2    uint64   `yaml:"rngSeed2"`
	ScriptDir   string   `yaml:"scriptDir"`
}

// Default returns the configuration used when no config file is
// given.
func Default() Config {
	return Config{
		ListenAddr:  ":8080",
		CorsOrigins: []string{"*"},
		RngSeed1:    1,
		RngSeed2:    2,
		ScriptDir:   "scripts",
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default() so an incomplete file only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}
