package main

import (
	"fmt"

	"github.com/kbukum/assemblyai-mcp/config"
	"github.com/kbukum/assemblyai-mcp/observability"
	"github.com/kbukum/assemblyai-mcp/transcription/assemblyai"
	"github.com/kbukum/assemblyai-mcp/version"
)

const (
	serviceName = "assemblyai-mcp"
	serverName  = "assemblyai-mcp-server"
)

// Config is the full configuration of the serve command.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	AssemblyAI assemblyai.Config    `yaml:"assemblyai" mapstructure:"assemblyai"`
	Telemetry  observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills unset values, including the build version.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.ServerVersion()
	}
	c.ServiceConfig.ApplyDefaults()
	c.AssemblyAI.ApplyDefaults()

	c.Telemetry.ServiceName = c.Name
	c.Telemetry.ServiceVersion = c.Version
	c.Telemetry.Environment = c.Environment
	c.Telemetry.ApplyDefaults()
}

// Validate checks every section. A missing credential fails here, before
// anything is started.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.AssemblyAI.Validate(); err != nil {
		return fmt.Errorf("assemblyai: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	return nil
}

// providerConfig is the factory input for the AssemblyAI provider.
func (c *Config) providerConfig() map[string]any {
	return map[string]any{
		"api_key":  c.AssemblyAI.APIKey,
		"base_url": c.AssemblyAI.BaseURL,
		"timeout":  c.AssemblyAI.Timeout,
	}
}

// toolsConfig is used by commands that never contact the remote service.
type toolsConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

func (c *toolsConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.ServerVersion()
	}
	c.ServiceConfig.ApplyDefaults()
}
