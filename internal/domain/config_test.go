package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestLoadConfig_EnvironmentOnly tests that the credential alone is
// enough to start with built-in defaults.
func TestLoadConfig_EnvironmentOnly(t *testing.T) {
	t.Setenv("LINEAR_API_KEY", "lin_api_test")
	t.Setenv("LINEAR_TEAM_NAME", "")
	t.Setenv("LINEAR_ENDPOINT", "")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Linear.APIKey != "lin_api_test" {
		t.Errorf("expected API key from environment, got %q", config.Linear.APIKey)
	}
	if config.Transport.Type != "stdio" {
		t.Errorf("expected stdio default transport, got %q", config.Transport.Type)
	}
	if config.Linear.Endpoint != DefaultEndpoint {
		t.Errorf("expected default endpoint, got %q", config.Linear.Endpoint)
	}
	if config.Linear.PageSize != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, config.Linear.PageSize)
	}
	if config.Linear.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultRequestTimeout, config.Linear.RequestTimeout)
	}
}

// TestLoadConfig_MissingAPIKey tests that a missing credential fails
// validation with a message naming the variable.
func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("LINEAR_API_KEY", "")

	_, err := LoadConfig("")
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "LINEAR_API_KEY") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

// TestLoadConfig_YAMLFile tests file-based transport and tuning knobs.
func TestLoadConfig_YAMLFile(t *testing.T) {
	t.Setenv("LINEAR_API_KEY", "lin_api_test")
	t.Setenv("LINEAR_ENDPOINT", "")

	content := `
transport:
  type: http
  http:
    host: 127.0.0.1
    port: 8080
linear:
  request_timeout: 10s
  page_size: 25
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Transport.Type != "http" {
		t.Errorf("expected http transport, got %q", config.Transport.Type)
	}
	if config.Transport.HTTP.Host != "127.0.0.1" || config.Transport.HTTP.Port != 8080 {
		t.Errorf("unexpected HTTP settings: %+v", config.Transport.HTTP)
	}
	if config.Linear.RequestTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", config.Linear.RequestTimeout)
	}
	if config.Linear.PageSize != 25 {
		t.Errorf("expected page size 25, got %d", config.Linear.PageSize)
	}
}

// TestLoadConfig_MissingFileUsesDefaults tests that a nonexistent file
// path is not an error.
func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LINEAR_API_KEY", "lin_api_test")
	t.Setenv("LINEAR_ENDPOINT", "")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Transport.Type != "stdio" {
		t.Errorf("expected default transport, got %q", config.Transport.Type)
	}
}

// TestLoadConfig_MalformedYAML tests that a broken file is rejected.
func TestLoadConfig_MalformedYAML(t *testing.T) {
	t.Setenv("LINEAR_API_KEY", "lin_api_test")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("transport: [:::"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
	if !strings.Contains(err.Error(), "YAML") {
		t.Errorf("error should mention YAML: %v", err)
	}
}

// TestLoadConfig_EndpointOverride tests the LINEAR_ENDPOINT override.
func TestLoadConfig_EndpointOverride(t *testing.T) {
	t.Setenv("LINEAR_API_KEY", "lin_api_test")
	t.Setenv("LINEAR_ENDPOINT", "https://linear.staging.acme.test/graphql")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Linear.Endpoint != "https://linear.staging.acme.test/graphql" {
		t.Errorf("expected endpoint override, got %q", config.Linear.Endpoint)
	}
}

// TestConfig_Validate tests the aggregated validation messages.
func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "invalid transport type",
			config: Config{
				Transport: TransportConfig{Type: "tcp"},
				Linear:    LinearConfig{APIKey: "k", Endpoint: DefaultEndpoint},
			},
			wantErr: "invalid transport type",
		},
		{
			name: "http transport without host",
			config: Config{
				Transport: TransportConfig{Type: "http", HTTP: HTTPConfig{Port: 8080}},
				Linear:    LinearConfig{APIKey: "k", Endpoint: DefaultEndpoint},
			},
			wantErr: "HTTP host is required",
		},
		{
			name: "http transport with bad port",
			config: Config{
				Transport: TransportConfig{Type: "http", HTTP: HTTPConfig{Host: "localhost", Port: 99999}},
				Linear:    LinearConfig{APIKey: "k", Endpoint: DefaultEndpoint},
			},
			wantErr: "invalid HTTP port",
		},
		{
			name: "endpoint without scheme",
			config: Config{
				Transport: TransportConfig{Type: "stdio"},
				Linear:    LinearConfig{APIKey: "k", Endpoint: "api.linear.app/graphql"},
			},
			wantErr: "http or https",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tc.wantErr, err)
			}
		})
	}
}

// TestConfig_ServerName tests the advertised server name.
func TestConfig_ServerName(t *testing.T) {
	plain := &Config{}
	if plain.ServerName() != "linear-mcp-server" {
		t.Errorf("unexpected server name: %q", plain.ServerName())
	}

	named := &Config{Linear: LinearConfig{TeamName: "Engineering"}}
	if named.ServerName() != "linear-mcp-server (Engineering)" {
		t.Errorf("unexpected server name: %q", named.ServerName())
	}
}
