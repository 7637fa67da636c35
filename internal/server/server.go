// Package server exposes discovery and selection as MCP tools so agents
// can drive the engine without shell round-trips.
package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/keyclick/keyclick/internal/config"
	"github.com/keyclick/keyclick/internal/discovery"
	"github.com/keyclick/keyclick/internal/dispatch"
	"github.com/keyclick/keyclick/internal/hints"
	"github.com/keyclick/keyclick/internal/logging"
	"github.com/keyclick/keyclick/internal/model"
	"github.com/keyclick/keyclick/internal/platform"
	"github.com/keyclick/keyclick/internal/version"
)

// Config holds MCP transport settings.
type Config struct {
	Transport string
	Port      int
}

// discoverer is the slice of the orchestrator the tool handlers use.
type discoverer interface {
	Discover(ctx context.Context, target platform.Target) (discovery.Activation, error)
	Invalidate(pid int)
	InvalidateAll()
}

// clicker posts a click for a matched element.
type clicker interface {
	Click(el model.ScreenElement, action hints.Action) error
}

// Server wraps the MCP server with the shared discovery pipeline. Tool
// handlers serialize platform access through providerMu; the accessibility
// and event APIs are not safe for concurrent use from one process.
type Server struct {
	provider   *platform.Provider
	orch       discoverer
	dispatcher clicker
	alphabet   string
	providerMu sync.Mutex
	log        logging.Logger
	mcp        *mcpserver.MCPServer
}

// New wires the MCP server around an orchestrator. The orchestrator's
// cache is the same one the watch loop uses inside this process, so a
// focus change invalidates what the tools would otherwise serve stale.
func New(provider *platform.Provider, orch *discovery.Orchestrator, cfg *config.Config, log logging.Logger) *Server {
	s := &Server{
		provider:   provider,
		orch:       orch,
		dispatcher: dispatch.NewDispatcher(provider.Inputter, log),
		alphabet:   cfg.HintChars,
		log:        log,
	}
	s.mcp = mcpserver.NewMCPServer(
		"keyclick",
		version.Version,
	)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// discover_elements
	s.mcp.AddTool(
		mcp.NewTool("discover_elements",
			mcp.WithDescription("Discover clickable elements in an application and assign keyboard hint labels. Returns hinted elements with screen coordinates, roles and labels."),
			mcp.WithString("app", mcp.Description("Application name (default: frontmost)")),
			mcp.WithNumber("pid", mcp.Description("Target process ID")),
			mcp.WithBoolean("fresh", mcp.Description("Bypass the discovery cache")),
		),
		s.handleDiscoverElements,
	)

	// select_element
	s.mcp.AddTool(
		mcp.NewTool("select_element",
			mcp.WithDescription("Feed hint characters through a selection session over a fresh discovery and click the matched element. Unmodified r/c/d/n switch the pending click action."),
			mcp.WithString("input", mcp.Description("Hint characters to type (e.g. 'AB')"), mcp.Required()),
			mcp.WithString("action", mcp.Description("Click action: click, right, double, cmd")),
			mcp.WithString("app", mcp.Description("Application name (default: frontmost)")),
			mcp.WithNumber("pid", mcp.Description("Target process ID")),
		),
		s.handleSelectElement,
	)

	// invalidate_cache
	s.mcp.AddTool(
		mcp.NewTool("invalidate_cache",
			mcp.WithDescription("Drop cached discovery results for one process or for all"),
			mcp.WithNumber("pid", mcp.Description("Process ID to drop (omit for all)")),
		),
		s.handleInvalidateCache,
	)

	// frontmost_app
	s.mcp.AddTool(
		mcp.NewTool("frontmost_app",
			mcp.WithDescription("Report the frontmost application's name, bundle id and process ID"),
		),
		s.handleFrontmostApp,
	)
}
