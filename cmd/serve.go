package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-launcher/internal/server"
	"github.com/mj1618/desktop-launcher/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the launcher",
	Long: `Start a Model Context Protocol (MCP) server that exposes the launcher
items as tools: list_items, focus_item, focus_window and open_item.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  desktop-launcher serve
  desktop-launcher serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	s, err := startSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	// tools read the controller directly; nothing else consumes updates
	go func() {
		for range s.updates.Out() {
		}
	}()
	go func() {
		if err := <-s.Done(); err != nil {
			logger.Error("controller stopped", "backend", s.provider.Name, "error", err)
		}
	}()

	srv := server.New(s.controller, s.intents, s.provider.Name, version.Version, logger)
	if err := srv.Serve(server.Config{Transport: transport, Port: port}); err != nil {
		return fmt.Errorf("MCP server: %w", err)
	}
	return nil
}
