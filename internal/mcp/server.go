// Package mcp exposes stratalint as an MCP (Model Context Protocol)
// tool server so coding agents can gate their own edits on the
// project's layering contracts.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config holds MCP server defaults. Tool inputs may override each one
// per call.
type Config struct {
	ConfigPath string
	Root       string
	GraphPath  string
}

// Server wraps the MCP SDK server with the contract checker tools.
type Server struct {
	mcpServer *mcpsdk.Server
	cfg       Config
}

// New creates an MCP server with the stratalint tools registered.
func New(cfg Config) *Server {
	if cfg.Root == "" {
		cfg.Root = "."
	}

	s := &Server{cfg: cfg}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "stratalint",
			Version: "0.3.0",
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// registerTools adds the stratalint tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "stratalint_check",
		Description: "Check the project's layering contracts against its import graph. Returns per-contract kept/broken status with violation chains.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "stratalint_graph",
		Description: "Build the module-import graph the checker would use and return its modules and edge count.",
	}, s.handleGraph)
}
