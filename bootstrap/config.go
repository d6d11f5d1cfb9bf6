package bootstrap

import (
	"github.com/kbukum/assemblyai-mcp/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods, as
// long as it keeps or overrides ApplyDefaults and Validate.
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    AssemblyAI assemblyai.Config `yaml:"assemblyai" mapstructure:"assemblyai"`
//	}
//
//	app, err := bootstrap.NewApp(&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
