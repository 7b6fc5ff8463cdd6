// Package server exposes the launcher over the Model Context Protocol.
package server

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/desktop-launcher/internal/launcher"
	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/pipe"
)

// Items is the read side of the launcher controller.
type Items interface {
	Snapshot() []model.ItemView
	Item(appID string) (model.ItemView, bool)
	Resolve(query string) (string, error)
}

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server with the launcher state and intent channel.
type Server struct {
	items   Items
	intents pipe.Sender[launcher.Intent]
	backend string
	logger  *slog.Logger
	mcp     *mcpserver.MCPServer
}

// New creates an MCP server with the launcher tools registered.
func New(items Items, intents pipe.Sender[launcher.Intent], backend, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		items:   items,
		intents: intents,
		backend: backend,
		logger:  logger,
		mcp:     mcpserver.NewMCPServer("desktop-launcher", version),
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.logger.Info("serving MCP over HTTP", "port", cfg.Port)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_items",
			mcp.WithDescription("List launcher items: one per application, with favorite flag, open state and windows"),
			mcp.WithString("app", mcp.Description("Only the item matching this application name")),
			mcp.WithBoolean("open", mcp.Description("Only items with at least one open window")),
		),
		s.handleListItems,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_item",
			mcp.WithDescription("Focus the first window of an application"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application id or name, e.g. 'firefox'")),
		),
		s.handleFocusItem,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Focus one specific window of an application"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application id or name")),
			mcp.WithNumber("window_id", mcp.Required(), mcp.Description("Window id as reported by list_items")),
		),
		s.handleFocusWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("open_item",
			mcp.WithDescription("Launch an application, or focus it if it is already running"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application id or name")),
		),
		s.handleOpenItem,
	)
}
