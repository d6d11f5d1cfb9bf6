package main

import (
	"context"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/kbukum/assemblyai-mcp/bootstrap"
	"github.com/kbukum/assemblyai-mcp/config"
	"github.com/kbukum/assemblyai-mcp/logger"
	"github.com/kbukum/assemblyai-mcp/mcp"
	"github.com/kbukum/assemblyai-mcp/observability"
	"github.com/kbukum/assemblyai-mcp/tools"
	"github.com/kbukum/assemblyai-mcp/transcription"
	"github.com/kbukum/assemblyai-mcp/transcription/assemblyai"
)

func newServeCmd() *cobra.Command {
	flags := &loaderFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP requests on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runServe(ctx context.Context, flags *loaderFlags) error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, flags.options()...); err != nil {
		return err
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	defer app.Recover()

	if err := wire(app, mcp.WithFaultHandler(app.FaultHandler())); err != nil {
		return err
	}
	return app.Serve(ctx)
}

// wire registers the components and builds the MCP server once they are up.
func wire(app *bootstrap.App[*Config], serverOpts ...mcp.Option) error {
	cfg := app.Cfg

	telemetry := observability.NewTelemetry(&cfg.Telemetry)
	providers := transcription.NewRegistry()
	providers.RegisterFactory(assemblyai.ProviderName, assemblyai.Factory())
	transcriber := transcription.NewComponent(providers, assemblyai.ProviderName, cfg.providerConfig())

	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}
	if err := app.RegisterComponent(transcriber); err != nil {
		return err
	}

	app.OnConfigure(func(_ context.Context, a *bootstrap.App[*Config]) error {
		registry, err := tools.NewRegistry()
		if err != nil {
			return err
		}
		dispatcher := tools.NewDispatcher(registry, transcriber.Provider(),
			tools.WithMetrics(telemetry.Metrics()),
			tools.WithServiceName(a.Name),
			tools.WithLogger(logger.Get("dispatcher")),
		)

		for _, name := range registry.Names() {
			a.Summary.TrackTool(name)
		}
		a.Summary.SetTransport("mcp stdio")

		info := mcpgo.Implementation{Name: serverName, Version: a.Version}
		a.SetServer(mcp.NewServer(info, dispatcher.ServerTools(), serverOpts...))
		return nil
	})
	return nil
}
