package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	stratamcp "github.com/stratalint/stratalint/internal/mcp"
)

var (
	mcpConfig string
	mcpRoot   string
	mcpGraph  string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVarP(&mcpConfig, "config", "c", "", "Path to layers.yml (default <root>/layers.yml)")
	mcpCmd.Flags().StringVar(&mcpRoot, "root", ".", "Go module root to scan for imports")
	mcpCmd.Flags().StringVar(&mcpGraph, "graph", "", "Path to a YAML import-graph snapshot (skips source scanning)")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs stratalint as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes the tools: check, graph.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv := stratamcp.New(stratamcp.Config{
		ConfigPath: mcpConfig,
		Root:       mcpRoot,
		GraphPath:  mcpGraph,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	return srv.Run(ctx)
}
