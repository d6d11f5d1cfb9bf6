package assemblyai

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/kbukum/assemblyai-mcp/errors"
	"github.com/kbukum/assemblyai-mcp/httpclient"
)

const (
	// ProviderName is the registered name for the AssemblyAI provider.
	ProviderName = "assemblyai"

	// DefaultBaseURL is the public AssemblyAI REST endpoint.
	DefaultBaseURL = "https://api.assemblyai.com"

	// APIKeyEnv is the environment variable holding the credential.
	APIKeyEnv = "ASSEMBLYAI_API_KEY"
)

// Config holds configuration for the AssemblyAI provider.
type Config struct {
	// APIKey is sent verbatim in the Authorization header.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL overrides the REST endpoint (tests, proxies, EU region).
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds each remote call. Zero means no client-side timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// Validate checks the configuration. A missing key is reported as a
// configuration error naming the environment variable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return apperrors.MissingConfig(APIKeyEnv)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("assemblyai.timeout must not be negative (got: %s)", c.Timeout)
	}
	return nil
}

// httpConfig derives the HTTP adapter configuration.
func (c *Config) httpConfig() httpclient.Config {
	return httpclient.Config{
		Name:    ProviderName,
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(c.APIKey, "Authorization"),
		Headers: map[string]string{"User-Agent": "assemblyai-mcp"},
	}
}

// timeoutLabel renders the timeout for summaries.
func (c *Config) timeoutLabel() string {
	if c.Timeout == 0 {
		return "none"
	}
	return c.Timeout.String()
}
