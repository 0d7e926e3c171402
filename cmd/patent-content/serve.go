// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-content/internal/tools"
	"github.com/pdiddy/patent-content/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search and fetch-content as MCP tools",
	Long: `Serve exposes the search_patents and get_patent tools over MCP.

The stdio transport (default) speaks the protocol on stdin/stdout and logs to
stderr. The http transport serves streamable HTTP at /mcp and a health check
at /healthz.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("transport", "", "transport: stdio or http (default stdio)")
	serveCmd.Flags().String("addr", "", "listen address for the http transport (default :8080)")

	_ = viper.BindPFlag("server.transport", serveCmd.Flags().Lookup("transport"))
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := newServices(cfg, logger)
	srv := tools.NewServer(svc.content, svc.search, version, logger.With("component", "tools"))

	switch cfg.Server.Transport {
	case types.TransportHTTP:
		return serveHTTP(ctx, srv)
	default:
		logger.Info("serving on stdio")
		return tools.ServeStdio(ctx, srv)
	}
}

func serveHTTP(ctx context.Context, srv *mcp.Server) error {
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Server.Addr, err)
	}
	return tools.ServeHTTP(ctx, ln, tools.NewHandler(srv, logger), logger)
}
