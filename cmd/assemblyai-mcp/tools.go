package main

import (
	"context"
	"encoding/json"
	"io"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/kbukum/assemblyai-mcp/bootstrap"
	"github.com/kbukum/assemblyai-mcp/config"
	"github.com/kbukum/assemblyai-mcp/logger"
	"github.com/kbukum/assemblyai-mcp/tools"
)

func newToolsCmd() *cobra.Command {
	flags := &loaderFlags{}
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the advertised tool descriptors as JSON",
		Long:  "Print the tools/list result without contacting AssemblyAI. No API key is needed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg toolsConfig
			if err := config.LoadConfig(serviceName, &cfg, append(flags.options(), config.WithWarnings(io.Discard))...); err != nil {
				return err
			}
			app, err := bootstrap.NewApp(&cfg,
				bootstrap.WithLogger(logger.Nop()),
				bootstrap.WithSummaryOutput(io.Discard),
				bootstrap.WithExitGrace(0),
			)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return app.RunTask(cmd.Context(), func(context.Context) error {
				return printTools(out)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func printTools(w io.Writer) error {
	registry, err := tools.NewRegistry()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mcpgo.ListToolsResult{Tools: registry.Tools()})
}
