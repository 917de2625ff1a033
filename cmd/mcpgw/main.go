package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"github.com/i2y/mcpgw/configs"
	"github.com/i2y/mcpgw/internal/adapter/inbound/handlers"
	"github.com/i2y/mcpgw/internal/adapter/inbound/httpapi"
	"github.com/i2y/mcpgw/internal/adapter/inbound/mcpserver"
	"github.com/i2y/mcpgw/internal/adapter/outbound/bravesearch"
	"github.com/i2y/mcpgw/internal/adapter/outbound/rpcclient"
	"github.com/i2y/mcpgw/internal/telemetry"
	"github.com/i2y/mcpgw/internal/usecase"
)

const (
	serviceName    = "mcpgw"
	serviceVersion = "0.1.0"
)

func main() {
	var transport string
	flag.StringVar(&transport, "transport", "http", "Transport mode: http, sse or stdio")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(transport, cfg.ParsedLogLevel())
	slog.SetDefault(logger)
	logger.Info("Logger initialized.", slog.String("level", cfg.ParsedLogLevel().String()), slog.String("transport", transport))

	if err := run(ctx, stop, transport, cfg, logger); err != nil {
		logger.Error("mcpgw exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// newLogger logs to stderr, or to a file in stdio mode where stdout/stdin
// carry the protocol.
func newLogger(transport string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if transport != "stdio" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "mcpgw.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts))
	}
	return slog.New(slog.NewTextHandler(logFile, opts))
}

func run(ctx context.Context, stop context.CancelFunc, transport string, cfg *configs.Config, logger *slog.Logger) error {
	shutdownOtel, err := telemetry.Init(ctx, telemetry.Options{
		Endpoint:    cfg.OtelExporterOtlpEndpoint,
		Insecure:    cfg.OtelExporterOtlpInsecure,
		ServiceName: serviceName,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize OpenTelemetry: %w", err)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry TracerProvider.", slog.Any("error", err))
		}
	}()

	// === Dependency Injection ===
	client := rpcclient.New(rpcclient.Config{
		Endpoint: cfg.Gateway.URL,
		Timeout:  cfg.Gateway.Timeout(),
		Headers:  cfg.Gateway.Headers,
	}, nil, logger)
	defer client.Close()

	var searcher usecase.WebSearcher
	if cfg.Search.APIKey != "" {
		brave, err := bravesearch.New(bravesearch.Config{
			APIKey:     cfg.Search.APIKey,
			URL:        cfg.Search.URL,
			Country:    cfg.Search.Country,
			SearchLang: cfg.Search.SearchLang,
			Count:      cfg.Search.Count,
		}, &http.Client{Timeout: cfg.Gateway.Timeout()}, logger)
		if err != nil {
			return err
		}
		searcher = brave
	} else {
		logger.Info("API_KEY_BRAVE not set, web_search handler disabled.")
	}

	registry, err := handlers.NewRegistry(
		usecase.NewBrowserTools(client, logger),
		usecase.NewCatalogTools(client, logger),
		searcher,
		logger,
	)
	if err != nil {
		return fmt.Errorf("build handler registry: %w", err)
	}

	switch transport {
	case "stdio":
		logger.Info("Starting in STDIO mode")
		mcpSrv := mcpserver.New(registry, serviceName, serviceVersion, logger)
		if err := mcpGoServer.NewStdioServer(mcpSrv).Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil

	case "sse":
		logger.Info("Starting in SSE mode")
		mcpSrv := mcpserver.New(registry, serviceName, serviceVersion, logger)
		sseServer := mcpGoServer.NewSSEServer(mcpSrv, mcpGoServer.WithBaseURL("http://"+cfg.ListenAddr))
		go func() {
			logger.Info("MCP SSE server starting.", slog.String("address", cfg.ListenAddr))
			if err := sseServer.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP SSE server failed to start.", slog.Any("error", err))
				stop()
			}
		}()
		<-ctx.Done()

		logger.Info("Shutting down SSE server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("MCP SSE server graceful shutdown failed.", slog.Any("error", err))
		}
		return nil

	case "http":
		srv := &http.Server{
			Addr:        cfg.ListenAddr,
			Handler:     httpapi.NewRouter(registry, logger),
			ReadTimeout: cfg.ServerReadTimeout,
			IdleTimeout: cfg.ServerIdleTimeout,
		}
		go func() {
			logger.Info("HTTP server starting.", slog.String("address", cfg.ListenAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server failed to start.", slog.Any("error", err))
				stop()
			}
		}()
		<-ctx.Done()

		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server graceful shutdown failed.", slog.Any("error", err))
		}
		logger.Info("Server shut down gracefully.")
		return nil

	default:
		return fmt.Errorf("invalid transport mode %q", transport)
	}
}
