package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/assemblyai-mcp/bootstrap"
	"github.com/kbukum/assemblyai-mcp/config"
	"github.com/kbukum/assemblyai-mcp/version"
)

type loaderFlags struct {
	configFile string
	envFile    string
}

func (f *loaderFlags) options() []config.LoaderOption {
	var opts []config.LoaderOption
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	return opts
}

func (f *loaderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "Path to a config.yml file")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to a .env file")
}

func newRootCmd() *cobra.Command {
	flags := &loaderFlags{}
	root := &cobra.Command{
		Use:   serviceName,
		Short: "MCP server exposing AssemblyAI transcription over stdio",
		Long: `assemblyai-mcp speaks the Model Context Protocol on stdin/stdout and
forwards tool calls to the AssemblyAI REST API.

The API key is read from ASSEMBLYAI_API_KEY, a .env file or config.yml.
Logs go to stderr; stdout carries protocol messages only.`,
		Version:       version.GetShortVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	flags.register(root)
	root.SetVersionTemplate(version.GetFullVersion() + "\n")

	root.AddCommand(newServeCmd(), newToolsCmd(), newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(bootstrap.ExitCode(err))
	}
}
