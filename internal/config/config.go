package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// PlannerConfig holds search behavior settings
type PlannerConfig struct {
	DeadlineSec float64 `yaml:"deadline_sec"` // wall-clock budget per planning call
	Penalty     float64 `yaml:"penalty"`      // heuristic per-object clearing penalty
}

// Deadline returns the per-call budget as a duration.
func (pc PlannerConfig) Deadline() time.Duration {
	return time.Duration(pc.DeadlineSec * float64(time.Second))
}

// OutputConfig holds output settings
type OutputConfig struct {
	Directory       string `yaml:"directory"`
	PreserveHistory bool   `yaml:"preserve_history"`
}

// MetricsConfig holds observability settings
type MetricsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	PushgatewayURL string `yaml:"pushgateway_url"`
	InfluxURL      string `yaml:"influx_url"`
	InfluxToken    string `yaml:"influx_token"` // supports ${ENV_VAR} interpolation
	InfluxOrg      string `yaml:"influx_org"`
	InfluxBucket   string `yaml:"influx_bucket"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Planner: PlannerConfig{
			DeadlineSec: 10,
			Penalty:     2,
		},
		Output: OutputConfig{
			Directory:       "./output",
			PreserveHistory: true,
		},
		Metrics: MetricsConfig{
			Enabled:        false,
			PushgatewayURL: "http://localhost:9091",
			InfluxURL:      "http://localhost:8086",
			InfluxOrg:      "udr",
			InfluxBucket:   "blockplan",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the config
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExampleConfig returns a commented example config
func ExampleConfig() string {
	return `# blockplan configuration file
# Priority: CLI flags > environment variables > config file > defaults

planner:
  # Wall-clock budget per planning call, in seconds. On expiry the call
  # reports "no plan found" rather than blocking.
  deadline_sec: 10

  # Heuristic penalty charged per object that must be relocated before a
  # goal object can move.
  penalty: 2

output:
  # Directory for run records
  directory: ./output

  # Keep records of every run instead of only the latest
  preserve_history: true

metrics:
  # Push planning metrics to a Prometheus Pushgateway and InfluxDB
  enabled: false

  pushgateway_url: http://localhost:9091

  influx_url: http://localhost:8086
  influx_token: ${INFLUX_TOKEN}
  influx_org: udr
  influx_bucket: blockplan
`
}
