package config

import (
	"fmt"
	"time"

	"github.com/kbukum/assemblyai-mcp/logger"
)

// ServiceConfig contains the configuration fields every process needs.
// Binaries extend it by embedding it in their own config structs.
//
// Example:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    AssemblyAI assemblyai.Config `yaml:"assemblyai" mapstructure:"assemblyai"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Server      ServerConfig  `yaml:"server" mapstructure:"server"`
}

// ServerConfig bounds the shutdown sequence of a long-running process.
type ServerConfig struct {
	// ShutdownTimeout caps the graceful transport shutdown after a signal.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	// ExitGrace is slept after shutdown before the process exits.
	ExitGrace time.Duration `yaml:"exit_grace" mapstructure:"exit_grace"`
}

const (
	DefaultShutdownTimeout = 5 * time.Second
	DefaultExitGrace       = 100 * time.Millisecond
)

// GetServiceConfig returns the base ServiceConfig.
// When embedded in a larger config struct, this method is promoted
// so the embedding struct automatically satisfies bootstrap.Config.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Embedding structs that override it must call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
}

// Validate validates the base configuration fields.
// Embedding structs that override it must call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	return nil
}

// ApplyDefaults fills unset shutdown bounds.
func (c *ServerConfig) ApplyDefaults() {
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.ExitGrace == 0 {
		c.ExitGrace = DefaultExitGrace
	}
}

// Validate rejects negative durations.
func (c *ServerConfig) Validate() error {
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must not be negative (got: %s)", c.ShutdownTimeout)
	}
	if c.ExitGrace < 0 {
		return fmt.Errorf("exit_grace must not be negative (got: %s)", c.ExitGrace)
	}
	return nil
}
