package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
}

// PathsConfig locates the three input datasets and the pipeline outputs
type PathsConfig struct {
	StationsFile   string `yaml:"stations_file" envconfig:"STATIONS_FILE" default:"data/gas_prices_clean.csv" validate:"required"`
	PopulationFile string `yaml:"population_file" envconfig:"POPULATION_FILE" default:"data/population.csv" validate:"required"`
	VolumesFile    string `yaml:"volumes_file" envconfig:"VOLUMES_FILE" default:"data/volumes.csv" validate:"required"`
	ResultsFile    string `yaml:"results_file" envconfig:"RESULTS_FILE" default:"data/analysis_results.json" validate:"required"`
	OutputDir      string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/reports" validate:"required"`
}

// AnalysisConfig holds the tunable parameters of the aggregation pipeline.
// USDExchangeRate is an approximation (the source analysis used 20 MXN/USD),
// not market precision.
type AnalysisConfig struct {
	LowerPercentile float64 `yaml:"lower_percentile" envconfig:"LOWER_PERCENTILE" default:"0.1" validate:"gte=0,lte=100"`
	UpperPercentile float64 `yaml:"upper_percentile" envconfig:"UPPER_PERCENTILE" default:"99.9" validate:"gte=0,lte=100"`
	MinPrice        float64 `yaml:"min_price" envconfig:"MIN_PRICE" default:"12" validate:"gte=0"`
	MaxPrice        float64 `yaml:"max_price" envconfig:"MAX_PRICE" default:"35" validate:"gtefield=MinPrice"`
	USDExchangeRate float64 `yaml:"usd_exchange_rate" envconfig:"USD_EXCHANGE_RATE" default:"20" validate:"gt=0"`
	TopN            int     `yaml:"top_n" envconfig:"TOP_N" default:"15" validate:"gt=0"`
	ReferenceYear   int     `yaml:"reference_year" envconfig:"REFERENCE_YEAR" default:"2024" validate:"gte=2015"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/fuelmx.log"`
}

// ServerConfig contains HTTP server configuration for the results API
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100" validate:"gt=0"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50" validate:"gt=0"`
}

// Load loads configuration from the environment (with struct-tag defaults)
// and then overlays an optional YAML file. File keys override environment
// values; keys absent from the file keep the environment value.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FUELMX", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct validation tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Analysis.LowerPercentile >= c.Analysis.UpperPercentile {
		return fmt.Errorf("lower_percentile %.2f must be below upper_percentile %.2f",
			c.Analysis.LowerPercentile, c.Analysis.UpperPercentile)
	}
	return nil
}
