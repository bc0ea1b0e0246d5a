package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"solarsmart/internal/api"
	"solarsmart/internal/auth"
	"solarsmart/internal/calculator"
	"solarsmart/internal/config"
	"solarsmart/internal/data"
	"solarsmart/internal/leads"
	"solarsmart/internal/logger"
	"solarsmart/internal/metrics"
	"solarsmart/internal/settings"
	"solarsmart/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zl, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Service:     "solarsmart-api",
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	ref := data.Default()
	if cfg.CatalogFile != "" {
		p, err := data.LoadLocations(cfg.CatalogFile)
		if err != nil {
			return err
		}
		ref = p
	}
	zl.Info("location catalog loaded", zap.Int("locations", len(ref.Locations())))

	defaults, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, store.Options{DatabaseURL: cfg.DatabaseURL, SQLitePath: cfg.SQLitePath}, zl)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	authSvc, err := auth.NewService(cfg.AdminPasswordHash, cfg.AdminPassword, tokens)
	if err != nil {
		return err
	}

	m := metrics.New()
	calc := calculator.New(ref)
	settingsSvc := settings.NewService(st, defaults, cfg.SettingsCacheTTL, zl)
	leadSvc := leads.NewService(st, ref, calc, settingsSvc, m, zl)

	srv := api.NewServer(api.Deps{
		Reference:  ref,
		Calculator: calc,
		Settings:   settingsSvc,
		Leads:      leadSvc,
		Auth:       authSvc,
		Metrics:    m,
		Log:        zl,
	}, api.Options{
		Addr:            ":" + cfg.Port,
		Release:         cfg.IsProduction(),
		CORSOrigins:     cfg.CORSAllowedOrigins,
		CookieSecure:    cfg.CookieSecure,
		StaticDir:       cfg.StaticDir,
		MetricsEnabled:  cfg.MetricsEnabled && cfg.MetricsPort == "",
		ShutdownTimeout: cfg.ShutdownTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if cfg.MetricsEnabled && cfg.MetricsPort != "" {
		g.Go(func() error {
			return api.Serve(gctx, zl.Named("metrics"), ":"+cfg.MetricsPort, m.Handler(), cfg.ShutdownTimeout)
		})
	}
	return g.Wait()
}
