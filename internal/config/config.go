package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the full runtime configuration, sourced from environment
// variables with an optional YAML file underneath.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Dataset  DatasetConfig  `yaml:"dataset" envconfig:"DATASET"`
}

// ServerConfig holds HTTP listener and timeout settings.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig bounds request throughput on the API group.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig controls the structured logger output.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// DatasetConfig locates and bounds the source dataset. The dataset is the
// single external input of the process, read once at startup.
type DatasetConfig struct {
	// File is the path to the cardiac outcomes export, CSV or XLSX.
	File string `yaml:"file" envconfig:"FILE" default:"data/cardiac_outcomes.csv"`
	// MaxRows aborts the load when the file exceeds the expected scale;
	// zero disables the bound.
	MaxRows int `yaml:"max_rows" envconfig:"MAX_ROWS" default:"500000"`
	// TopHospitals is the default N for the best/worst hospital ranking.
	TopHospitals int `yaml:"top_hospitals" envconfig:"TOP_HOSPITALS" default:"10"`
}

// Load builds the configuration from the CARDIOPULSE_* environment
// and, when present, a YAML config file.
func Load() (*Config, error) {
	var cfg Config

	// Env values win over file values; merge only fills the gaps.
	if err := envconfig.Process("CARDIOPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile parses a YAML config file.
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

// merge fills env-config zero values from the file config; env wins when
// both are set.
func merge(fileCfg, envCfg Config) Config {
	if envCfg.Server.Port == 0 {
		envCfg.Server.Port = fileCfg.Server.Port
	}
	if envCfg.Server.ReadTimeout == 0 {
		envCfg.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if envCfg.Server.WriteTimeout == 0 {
		envCfg.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if envCfg.Dataset.File == "" {
		envCfg.Dataset.File = fileCfg.Dataset.File
	}
	if envCfg.Dataset.TopHospitals == 0 {
		envCfg.Dataset.TopHospitals = fileCfg.Dataset.TopHospitals
	}
	if envCfg.Logging.FilePath == "" {
		envCfg.Logging.FilePath = fileCfg.Logging.FilePath
	}
	return envCfg
}

// DatasetPath returns the dataset file path resolved against the working
// directory.
func (c *Config) DatasetPath() string {
	if filepath.IsAbs(c.Dataset.File) {
		return c.Dataset.File
	}
	abs, err := filepath.Abs(c.Dataset.File)
	if err != nil {
		return c.Dataset.File
	}
	return abs
}

// validate rejects unusable settings and normalizes the logging
// fields to supported values.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Dataset.File == "" {
		return fmt.Errorf("dataset file path must be set")
	}

	if c.Dataset.MaxRows < 0 {
		return fmt.Errorf("dataset max rows must not be negative")
	}

	if c.Dataset.TopHospitals <= 0 {
		return fmt.Errorf("top hospitals count must be positive")
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// findConfigFile probes the conventional locations for a config file
// and returns the first hit.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns the built-in configuration used when no environment
// or file overrides apply.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Dataset: DatasetConfig{
			File:         "data/cardiac_outcomes.csv",
			MaxRows:      500000,
			TopHospitals: 10,
		},
	}
}
