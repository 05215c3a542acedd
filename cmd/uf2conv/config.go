package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfigPath = "UF2CONV_CONFIG"

// Config represents the uf2conv configuration file (~/.config/uf2conv/config.yaml).
// Numeric fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	// Conversion defaults
	OutputFormat  string `yaml:"output_format"`
	MaxOutputSize *int64 `yaml:"max_output_size"`
	Family        string `yaml:"family"`
	HexLineLength *int64 `yaml:"hex_line_length"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
	MaxUploadSize *int64 `yaml:"max_upload_size"`
}

func configPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "uf2conv", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't
// exist or cannot be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	cfg, err := readConfig(path)
	if err != nil {
		return Config{}
	}
	return cfg
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyLoggingConfig applies config file defaults to the global logging flags.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyConvertConfig applies config file defaults to convert command variables
// when the corresponding CLI flag was not explicitly set.
func applyConvertConfig(c *cli.Command, cfg Config,
	format *string, maxSize *int64, family *string, hexLineLength *int64,
) {
	if cfg.OutputFormat != "" && !c.IsSet("format") {
		*format = cfg.OutputFormat
	}
	if cfg.MaxOutputSize != nil && !c.IsSet("max-size") {
		*maxSize = *cfg.MaxOutputSize
	}
	if cfg.Family != "" && !c.IsSet("family") {
		*family = cfg.Family
	}
	if cfg.HexLineLength != nil && !c.IsSet("hex-line-length") {
		*hexLineLength = *cfg.HexLineLength
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxUpload *int64, maxSize *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxUploadSize != nil && !c.IsSet("max-upload") {
		*maxUpload = *cfg.MaxUploadSize
	}
	if cfg.MaxOutputSize != nil && !c.IsSet("max-size") {
		*maxSize = *cfg.MaxOutputSize
	}
}
