package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Environment variable names shared with other MCP gateway clients.
const (
	EnvGatewayURL = "MCP_GATEWAY_URL"
	EnvTimeout    = "MCP_TIMEOUT"
)

// GatewayConfig describes how to reach the MCP gateway.
type GatewayConfig struct {
	URL            string            `envconfig:"MCP_GATEWAY_URL" default:"http://localhost:8811" yaml:"url"`
	TimeoutSeconds float64           `envconfig:"MCP_TIMEOUT" default:"30.0" yaml:"timeout"`
	Headers        map[string]string `ignored:"true" yaml:"headers,omitempty"`
}

// Timeout returns the request timeout as a time.Duration.
func (g GatewayConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds * float64(time.Second))
}

// SearchConfig holds the Brave Search settings.
type SearchConfig struct {
	APIKey     string `envconfig:"API_KEY_BRAVE" yaml:"-"`
	URL        string `ignored:"true" yaml:"url,omitempty"`
	Country    string `ignored:"true" yaml:"country,omitempty"`
	SearchLang string `ignored:"true" yaml:"search_lang,omitempty"`
	Count      int    `ignored:"true" yaml:"count,omitempty"`
}

// FileConfig defines the structure loaded from the YAML configuration file.
type FileConfig struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Search  SearchConfig  `yaml:"search"`
}

// Config holds the final application configuration, merged from file and
// environment variables. Environment variables win over the file, which wins
// over defaults.
type Config struct {
	ConfigFilePath string `envconfig:"MCPGW_CONFIG_FILE"`

	Gateway GatewayConfig
	Search  SearchConfig

	ListenAddr               string        `envconfig:"MCPGW_LISTEN_ADDR" default:":8080"`
	ShutdownTimeout          time.Duration `envconfig:"MCPGW_SHUTDOWN_TIMEOUT" default:"5s"`
	ServerReadTimeout        time.Duration `envconfig:"MCPGW_SERVER_READ_TIMEOUT" default:"5s"`
	ServerIdleTimeout        time.Duration `envconfig:"MCPGW_SERVER_IDLE_TIMEOUT" default:"120s"`
	OtelExporterOtlpEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string        `envconfig:"MCPGW_LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load reads environment variables, then the optional YAML file named by
// MCPGW_CONFIG_FILE, and merges them.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if cfg.ConfigFilePath != "" {
		fileCfg, err := readFile(cfg.ConfigFilePath)
		if err != nil {
			return nil, err
		}
		merge(&cfg, fileCfg)
		slog.Info("Loaded configuration from file.", "path", cfg.ConfigFilePath)
	}

	if err := cfg.Gateway.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadGateway loads only the gateway section. It is what library callers use
// when they do not pass an explicit configuration.
func LoadGateway() (GatewayConfig, error) {
	cfg, err := Load()
	if err != nil {
		return GatewayConfig{}, err
	}
	return cfg.Gateway, nil
}

func readFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	var fileCfg FileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", path, err)
	}
	return &fileCfg, nil
}

// merge copies file values into cfg for every setting whose environment
// variable is not set.
func merge(cfg *Config, file *FileConfig) {
	if file.Gateway.URL != "" && !envSet(EnvGatewayURL) {
		cfg.Gateway.URL = file.Gateway.URL
	}
	if file.Gateway.TimeoutSeconds != 0 && !envSet(EnvTimeout) {
		cfg.Gateway.TimeoutSeconds = file.Gateway.TimeoutSeconds
	}
	if len(file.Gateway.Headers) > 0 {
		cfg.Gateway.Headers = file.Gateway.Headers
	}
	cfg.Search.URL = file.Search.URL
	cfg.Search.Country = file.Search.Country
	cfg.Search.SearchLang = file.Search.SearchLang
	cfg.Search.Count = file.Search.Count
}

func (g GatewayConfig) validate() error {
	if strings.TrimSpace(g.URL) == "" {
		return fmt.Errorf("%s must not be empty", EnvGatewayURL)
	}
	if g.TimeoutSeconds <= 0 {
		return fmt.Errorf("%s must be positive, got %v", EnvTimeout, g.TimeoutSeconds)
	}
	return nil
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}
