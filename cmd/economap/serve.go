package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"economap/internal/ctxlog"
	"economap/internal/mcp"
	"economap/internal/metrics"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	var httpAddr string
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio or HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(httpAddr, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve the streamable HTTP transport on this address instead of stdio")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address")
	return cmd
}

func runServe(httpAddr, metricsAddr string) error {
	baseCtx, cfg, err := loadProject()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(baseCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger := ctxlog.FromContext(ctx)

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if cfg.Seed.Enabled {
		result, err := seedStore(ctx, cfg, db)
		if err != nil {
			return err
		}
		if result.Created {
			logger.Info("seeded empty store", "objects", result.ObjectsInserted, "links", result.LinksInserted)
		}
	}

	server := mcp.NewServer(db, cfg.Tables.Links, version)

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		defer shutdown(metricsServer)
		logger.Info("serving metrics", "addr", metricsAddr)
	}

	if httpAddr == "" {
		logger.Info("serving MCP over stdio")
		return server.Run(ctx, &sdk.StdioTransport{})
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.HTTPHandler())
	if metricsAddr == "" {
		mux.Handle("/metrics", metrics.Handler())
	}
	httpServer := &http.Server{Addr: httpAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown(httpServer)
	}()

	logger.Info("serving MCP over HTTP", "addr", httpAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func shutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
}
