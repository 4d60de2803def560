package options

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultLogLevel = "info"

// Config is the file form of Options. Casters cannot be expressed in YAML and are
// registered with WithCaster.
//
//	separator: "."
//	tag: url
//	log_level: debug
type Config struct {
	Separator string `yaml:"separator"`
	Tag       string `yaml:"tag"`
	LogLevel  string `yaml:"log_level"`
}

// LoadConfig loads and parses a YAML config file from the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML data into a Config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}

	if cfg.Tag == "" {
		cfg.Tag = DefaultTagKey
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// Marshal serializes a Config to YAML.
func (cfg *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Options converts the config to options. The log level produces a new logger writing
// to the standard logger's output.
func (cfg *Config) Options() ([]Option, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config log_level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(logrus.StandardLogger().Out)
	logger.SetLevel(level)

	return []Option{
		WithSeparator(cfg.Separator),
		WithTagKey(cfg.Tag),
		WithLogger(logger),
	}, nil
}
