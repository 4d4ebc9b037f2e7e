package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DataConfig struct {
	ExportDirs         []string `yaml:"export_dirs" validate:"min=1"`
	MatchedDir         string   `yaml:"matched_dir" validate:"required"`
	ReportsDir         string   `yaml:"reports_dir" validate:"required"`
	CustomersPath      string   `yaml:"customers_path"`
	GeocodeCachePath   string   `yaml:"geocode_cache_path" validate:"required"`
	TrainingRoutesPath string   `yaml:"training_routes_path" validate:"required"`
}

type GeocodingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	UserAgent string `yaml:"user_agent"`
}

type AssignmentConfig struct {
	PrimaryBus     string   `yaml:"primary_bus" validate:"required"`
	Buses          []string `yaml:"buses"`
	MaxStopsPerBus int      `yaml:"max_stops_per_bus"`
	MaxExamples    int      `yaml:"max_examples"`
	SampleLimit    int      `yaml:"sample_limit"`
	Model          string   `yaml:"model"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Data       DataConfig       `yaml:"data"`
	Geocoding  GeocodingConfig  `yaml:"geocoding"`
	Assignment AssignmentConfig `yaml:"assignment"`
	// BusKeywords maps lowercase filename keywords to bus names, used to
	// infer a bus when the driver descriptor carries none.
	BusKeywords map[string]string `yaml:"bus_keywords"`
}

// Load reads and validates the YAML configuration, falling back to defaults
// when no file is present at any candidate path.
func Load(path string) (Config, error) {
	cfg := Default()

	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "config/config.yml"}
	}

	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		if path == "" && os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: parse yaml: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg.Data); err != nil {
		return Config{}, fmt.Errorf("load config: data section: %w", err)
	}
	if err := v.Struct(cfg.Assignment); err != nil {
		return Config{}, fmt.Errorf("load config: assignment section: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8000"
	}
	return cfg, nil
}

// Default returns the configuration matching the reference deployment.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8000"},
		Data: DataConfig{
			ExportDirs:         []string{"data/fleetgo_csv", "fleetgo_csv"},
			MatchedDir:         "data/matched",
			ReportsDir:         "data/reports",
			CustomersPath:      "data/customers.csv",
			GeocodeCachePath:   "data/geocode_cache.json",
			TrainingRoutesPath: "data/routes_training.json",
		},
		Geocoding: GeocodingConfig{
			Enabled:   false,
			Endpoint:  "https://nominatim.openstreetmap.org/search",
			UserAgent: "fleet-route-bot/1.0 (contact: ops@example.com)",
		},
		Assignment: AssignmentConfig{
			PrimaryBus:     "Ocho",
			Buses:          []string{"Ocho", "Rebel"},
			MaxStopsPerBus: 18,
			MaxExamples:    3,
			SampleLimit:    50,
			Model:          "gpt-4o-mini",
		},
		BusKeywords: map[string]string{
			"ocho":  "Ocho",
			"rebel": "Rebel",
		},
	}
}

// Get reads an environment variable with a fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
