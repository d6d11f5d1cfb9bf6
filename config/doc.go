// Package config loads process configuration.
//
// It uses Viper to read an optional YAML file and joho/godotenv to populate
// the environment from an optional .env file. Every environment variable is
// then mapped onto nested keys by splitting on underscores:
//
//	ASSEMBLYAI_API_KEY      -> assemblyai.api_key
//	LOGGING_LEVEL           -> logging.level
//	SERVER_SHUTDOWN_TIMEOUT -> server.shutdown_timeout
//
// # Usage
//
//	var cfg Config
//	err := config.LoadConfig("assemblyai-mcp", &cfg, config.WithEnvFile(".env"))
//
// Config types follow the ApplyDefaults/Validate convention and embed
// ServiceConfig for the fields every process shares.
package config
