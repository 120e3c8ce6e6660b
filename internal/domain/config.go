package domain

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the Linear GraphQL API endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

// DefaultPageSize is the number of entries list tools retrieve when
// the caller does not supply "first".
const DefaultPageSize = 50

// DefaultRequestTimeout bounds every external API call.
const DefaultRequestTimeout = 30 * time.Second

// Config represents the server configuration. Transport and tuning
// knobs come from an optional YAML file; the Linear credential and
// team label come from the environment and always win over the file.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Linear    LinearConfig    `yaml:"linear"`
}

// TransportConfig selects between stdio and HTTP transport.
type TransportConfig struct {
	Type string     `yaml:"type"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings. Only used when the
// transport type is "http".
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LinearConfig defines Linear API settings. APIKey and TeamName come
// from the environment only (LINEAR_API_KEY, LINEAR_TEAM_NAME); the
// remaining knobs may be set in the config file.
type LinearConfig struct {
	APIKey         string        `yaml:"-"`
	TeamName       string        `yaml:"-"`
	Endpoint       string        `yaml:"endpoint,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
	PageSize       int           `yaml:"page_size,omitempty"`
}

// LoadConfig builds the configuration from an optional YAML file and
// the environment. An empty path, or a path pointing at no file,
// yields the built-in defaults; a present but malformed file is an
// error. LINEAR_API_KEY is required.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Transport: TransportConfig{Type: "stdio"},
		Linear: LinearConfig{
			Endpoint:       DefaultEndpoint,
			RequestTimeout: DefaultRequestTimeout,
			PageSize:       DefaultPageSize,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
			}
		case os.IsNotExist(err):
			// Config file is optional; defaults apply.
		default:
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	applyEnv(config)
	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyEnv overlays environment variables onto the configuration.
func applyEnv(config *Config) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("linear.api.key", "LINEAR_API_KEY")
	v.BindEnv("linear.team.name", "LINEAR_TEAM_NAME")
	v.BindEnv("linear.endpoint", "LINEAR_ENDPOINT")

	config.Linear.APIKey = v.GetString("linear.api.key")
	config.Linear.TeamName = v.GetString("linear.team.name")
	if endpoint := v.GetString("linear.endpoint"); endpoint != "" {
		config.Linear.Endpoint = endpoint
	}
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(config *Config) {
	if config.Transport.Type == "" {
		config.Transport.Type = "stdio"
	}
	if config.Linear.Endpoint == "" {
		config.Linear.Endpoint = DefaultEndpoint
	}
	if config.Linear.RequestTimeout <= 0 {
		config.Linear.RequestTimeout = DefaultRequestTimeout
	}
	if config.Linear.PageSize <= 0 {
		config.Linear.PageSize = DefaultPageSize
	}
}

// Validate checks the configuration for completeness and correctness.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errors []string

	if err := c.validateTransport(); err != nil {
		errors = append(errors, err.Error())
	}

	if c.Linear.APIKey == "" {
		errors = append(errors, "LINEAR_API_KEY environment variable is required")
	}

	if err := validateEndpoint(c.Linear.Endpoint); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// validateTransport validates the transport configuration.
func (c *Config) validateTransport() error {
	var errors []string

	if c.Transport.Type == "" {
		errors = append(errors, "transport type is required")
	} else if c.Transport.Type != "stdio" && c.Transport.Type != "http" {
		errors = append(errors, fmt.Sprintf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	if c.Transport.Type == "http" {
		if c.Transport.HTTP.Host == "" {
			errors = append(errors, "HTTP host is required when transport type is 'http'")
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// validateEndpoint validates the Linear API endpoint URL.
func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("linear endpoint is required")
	}

	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("linear endpoint is invalid: %v", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("linear endpoint must use http or https scheme")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("linear endpoint must include a host")
	}

	return nil
}

// ServerName returns the advertised MCP server name, customized with
// the optional team label from LINEAR_TEAM_NAME.
func (c *Config) ServerName() string {
	if c.Linear.TeamName != "" {
		return fmt.Sprintf("linear-mcp-server (%s)", c.Linear.TeamName)
	}
	return "linear-mcp-server"
}
