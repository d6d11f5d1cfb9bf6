// Package component defines the lifecycle contract shared by the bridge's
// long-lived parts.
//
// A Component is started before the MCP transport begins reading and is
// stopped after it drains. The Registry keeps start order and stops in
// reverse.
//
//   - Component: Start/Stop/Health lifecycle
//   - Describable: optional startup summary entry
package component
