package cmd

import (
	"fmt"

	"github.com/keyclick/keyclick/internal/config"
	"github.com/keyclick/keyclick/internal/discovery"
	"github.com/keyclick/keyclick/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing keyclick tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes discovery and
selection as tools. Agents can call tools directly without shell overhead,
and the element cache stays warm between calls.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  keyclick serve
  keyclick serve --transport streamable-http --port 8080
  keyclick serve --watch=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Bool("watch", true, "Follow focus changes to keep the cache warm")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	watch, _ := cmd.Flags().GetBool("watch")

	provider, orch, err := newPipeline()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx := cmd.Context()

	if watch && provider.Apps != nil {
		watcher := discovery.NewWatcher(provider.Apps, orch, cfg.WatchInterval(), true, logger)
		go watcher.Run(ctx, nil)
	}

	// Follow config edits while serving. Only the cache ttl is safe to
	// change under live sessions; everything else applies on restart.
	go config.Watch(ctx, cfgPath, logger, func(next *config.Config) {
		orch.SetCacheTTL(next.CacheTTL())
	})

	srv := server.New(provider, orch, cfg, logger)
	return srv.Serve(server.Config{Transport: transport, Port: port})
}
