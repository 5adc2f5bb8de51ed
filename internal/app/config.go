package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string   // loader configuration file (hcl)
	Units      []string // external unit names to resolve, in order

	LogFormat string
	LogLevel  string
	StatsPort int
	DumpPath  string // overrides the configuration file's dump_path
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
