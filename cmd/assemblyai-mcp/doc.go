// Command assemblyai-mcp is an MCP server that exposes AssemblyAI
// transcription as tools over stdio.
//
// Usage:
//
//	assemblyai-mcp [serve] [--config config.yml] [--env-file .env]
//	assemblyai-mcp tools
//	assemblyai-mcp version [--json]
//
// The process exits 0 after a graceful shutdown, 1 when configuration or
// startup fails (including a missing ASSEMBLYAI_API_KEY) and 2 on a fatal
// fault.
package main
