package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/elevationruler/internal/config"
)

const ConfigPath = "config/ruler.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	scenePath := flag.String("scene", "config/scene.json", "scene document (JSON)")
	gridless := flag.Bool("gridless", false, "measure straight distance on gridded scenes")
	route := flag.Bool("route", false, "suggest a cell route for every path")
	flag.Parse()

	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("RULER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadRuler(cfgPath)
	if err != nil {
		return fmt.Errorf("loading ruler config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("config loaded",
		"grid", cfg.Grid.Type,
		"diagonals", cfg.Grid.Diagonals,
		"algorithm", cfg.Penalty.Algorithm)

	a, err := newApp(cfg, *scenePath)
	if err != nil {
		return err
	}
	slog.Info("scene loaded", "scene", *scenePath, "paths", len(a.paths))

	reports := make([]report, len(a.paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, p := range a.paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = a.measure(p, *gridless, *route)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("measuring paths: %w", err)
	}

	return writeReports(os.Stdout, reports)
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
