// Package mcp serves tools over the Model Context Protocol on stdio, built
// on the mark3labs/mcp-go stdio server.
//
// Tool calls run on a worker pool and each reply is written as one line
// under a lock, so concurrent calls never interleave. A failed call is
// answered with the JSON-RPC code of its application error: unknown tools
// get method not found, bad arguments get invalid params, and the error data
// carries the application code, retryable flag and details. Nothing else may
// write to stdout while a Server is running.
//
//	srv := mcp.NewServer(mcpgo.Implementation{Name: "assemblyai-mcp-server", Version: v}, dispatcher.ServerTools())
//	err := srv.Serve(ctx)
package mcp
