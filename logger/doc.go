// Package logger provides structured logging using zerolog.
//
// Every logger writes to stderr. The MCP stdio transport owns stdout, and a
// single stray byte there corrupts the protocol stream.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("dispatcher")
//	log.Info("tool call received", logger.Fields("tool", name))
package logger
