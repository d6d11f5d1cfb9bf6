// Package version reports build information for the assemblyai-mcp binary.
//
// Release builds set the version with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/assemblyai-mcp/version.Version=0.2.0" ./cmd/assemblyai-mcp
//
// Unset values fall back to the VCS stamp embedded by the Go toolchain.
package version
