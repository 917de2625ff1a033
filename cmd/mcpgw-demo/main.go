package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/i2y/mcpgw/configs"
	"github.com/i2y/mcpgw/internal/adapter/outbound/bravesearch"
	"github.com/i2y/mcpgw/internal/adapter/outbound/rpcclient"
	"github.com/i2y/mcpgw/internal/domain"
	"github.com/i2y/mcpgw/internal/telemetry"
	"github.com/i2y/mcpgw/internal/usecase"
)

func main() {
	var (
		url    string
		search string
	)
	flag.StringVar(&url, "url", "https://example.com", "Page to navigate to")
	flag.StringVar(&search, "search", "", "Optional web search query (needs API_KEY_BRAVE)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.ParsedLogLevel()}))

	shutdownOtel, err := telemetry.Init(ctx, telemetry.Options{
		Endpoint:    cfg.OtelExporterOtlpEndpoint,
		Insecure:    cfg.OtelExporterOtlpInsecure,
		ServiceName: "mcpgw-demo",
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = shutdownOtel(context.Background()) }()

	gw := rpcclient.Config{Endpoint: cfg.Gateway.URL, Timeout: cfg.Gateway.Timeout(), Headers: cfg.Gateway.Headers}
	err = rpcclient.With(gw, nil, logger, func(client *rpcclient.Client) error {
		return demo(ctx, os.Stdout, client, url, logger)
	})
	if err == nil && search != "" {
		err = webSearch(ctx, os.Stdout, cfg.Search, search, logger)
	}
	if err != nil {
		logger.Error("Demo failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

func demo(ctx context.Context, out io.Writer, client *rpcclient.Client, url string, logger *slog.Logger) error {
	browser := usecase.NewBrowserTools(client, logger)
	catalog := usecase.NewCatalogTools(client, logger)

	tools, err := browser.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("list tools: %w", err)
	}
	fmt.Fprintf(out, "Available MCP tools: %d\n", len(tools))
	for _, tool := range tools {
		fmt.Fprintf(out, "  - %s\n", tool.Name())
	}

	result, err := browser.Navigate(ctx, domain.NavigateArgs{URL: url})
	if err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	fmt.Fprintf(out, "\nNavigate: %s\n", result)

	snapshot, err := browser.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	fmt.Fprintf(out, "\nSnapshot: %s\n", snapshot)

	servers, err := catalog.Find(ctx, domain.FindServersArgs{Query: "browser"})
	if err != nil {
		return fmt.Errorf("find servers: %w", err)
	}
	fmt.Fprintf(out, "\nMCP servers found: %s\n", servers)
	return nil
}

func webSearch(ctx context.Context, out io.Writer, cfg configs.SearchConfig, query string, logger *slog.Logger) error {
	brave, err := bravesearch.New(bravesearch.Config{
		APIKey:     cfg.APIKey,
		URL:        cfg.URL,
		Country:    cfg.Country,
		SearchLang: cfg.SearchLang,
		Count:      cfg.Count,
	}, http.DefaultClient, logger)
	if err != nil {
		return err
	}
	res, err := brave.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("web search: %w", err)
	}
	fmt.Fprintf(out, "\nSearch results: %s\n", res)
	return nil
}
