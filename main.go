package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SayaAndy/lightbox-docs/config"
	"github.com/SayaAndy/lightbox-docs/internal/directive"
	"github.com/SayaAndy/lightbox-docs/internal/rescan"
	"github.com/SayaAndy/lightbox-docs/internal/server"
	"github.com/SayaAndy/lightbox-docs/internal/site"
	"github.com/SayaAndy/lightbox-docs/internal/source"
)

var configPath = flag.String("c", "config.yaml", "Path to the configuration file (in YAML format)")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-c config.yaml] [build|serve]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "build"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		slog.Error("fail to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := source.New(ctx, &cfg.Source)
	if err != nil {
		slog.Error("fail to initialize document source", slog.String("error", err.Error()))
		os.Exit(1)
	}

	policy, err := directive.ParseErrorPolicy(cfg.Directives.ErrorPolicy)
	if err != nil {
		slog.Error("fail to parse directive error policy", slog.String("error", err.Error()))
		os.Exit(1)
	}

	builder, err := site.NewBuilder(src,
		site.WithErrorPolicy(policy),
		site.WithLayoutFiles(cfg.Layout.Files...),
	)
	if err != nil {
		slog.Error("fail to initialize site builder", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Debug("directives registered", slog.Any("directives", builder.Directives()))

	switch command {
	case "build":
		err = build(ctx, builder, cfg.Output.Dir)
	case "serve":
		err = serve(ctx, builder, src, &cfg.Serve)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", slog.String("command", command), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func build(ctx context.Context, builder *site.Builder, outDir string) error {
	slog.Info("building documents", slog.String("output", outDir))

	stats, err := builder.Build(ctx, outDir)
	if err != nil {
		return err
	}

	slog.Info("build finished",
		slog.Int("written", stats.Written),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
	)
	if stats.Failed > 0 {
		return fmt.Errorf("%d documents failed to render", stats.Failed)
	}
	return nil
}

func serve(ctx context.Context, builder *site.Builder, src source.Source, cfg *config.ServeConfig) error {
	srv, err := server.NewServer(builder, cfg.CacheTTL)
	if err != nil {
		return fmt.Errorf("fail to initialize server: %w", err)
	}

	if cfg.RescanCron != "" {
		rs, err := rescan.NewScheduler(src, cfg.RescanCron, func(changed []string) error {
			srv.Purge(changed...)
			return nil
		})
		if err != nil {
			return fmt.Errorf("fail to initialize rescan scheduler: %w", err)
		}
		defer func() {
			if err := rs.Shutdown(); err != nil {
				slog.Warn("failed to stop rescan scheduler", slog.String("error", err.Error()))
			}
		}()
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down preview server")
		if err := srv.Shutdown(); err != nil {
			slog.Warn("failed to shut down server", slog.String("error", err.Error()))
		}
	}()

	return srv.Listen(cfg.Address)
}
