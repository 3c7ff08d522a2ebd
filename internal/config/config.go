package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// ReportConfig controls report classification and formatting
type ReportConfig struct {
	ThresholdDays int    `yaml:"threshold_days" envconfig:"THRESHOLD_DAYS"`
	DateFormat    string `yaml:"date_format" envconfig:"DATE_FORMAT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Load loads configuration in precedence order: environment variables beat
// the optional config file, which beats the built-in defaults. The struct
// carries no envconfig default tags so an unset variable stays zero and a
// lower layer can fill it.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EMO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	cfg = mergeConfigs(*Default(), cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs fills zero-valued fields of the higher-precedence config
// from the lower-precedence one.
func mergeConfigs(lower, higher Config) Config {
	if higher.Report.ThresholdDays == 0 {
		higher.Report.ThresholdDays = lower.Report.ThresholdDays
	}
	if higher.Report.DateFormat == "" {
		higher.Report.DateFormat = lower.Report.DateFormat
	}
	if higher.Logging.Level == "" {
		higher.Logging.Level = lower.Logging.Level
	}
	if higher.Logging.Format == "" {
		higher.Logging.Format = lower.Logging.Format
	}
	if higher.Logging.Output == "" {
		higher.Logging.Output = lower.Logging.Output
	}
	if higher.Logging.FilePath == "" {
		higher.Logging.FilePath = lower.Logging.FilePath
	}
	if higher.Paths.DataDir == "" {
		higher.Paths.DataDir = lower.Paths.DataDir
	}
	if higher.Paths.ReportsDir == "" {
		higher.Paths.ReportsDir = lower.Paths.ReportsDir
	}
	if higher.Paths.LogsDir == "" {
		higher.Paths.LogsDir = lower.Paths.LogsDir
	}

	return higher
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Report.ThresholdDays <= 0 {
		return fmt.Errorf("report threshold days must be positive, got %d", c.Report.ThresholdDays)
	}

	if _, err := time.Parse(c.Report.DateFormat, time.Now().Format(c.Report.DateFormat)); err != nil {
		return fmt.Errorf("invalid report date format %q", c.Report.DateFormat)
	}

	// Always JSON format so log files stay machine readable
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		c.Logging.Output = "both"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/emocli.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			ThresholdDays: 30,
			DateFormat:    "2006-01-02",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/emocli.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "data/reports",
			LogsDir:    "logs",
		},
	}
}
