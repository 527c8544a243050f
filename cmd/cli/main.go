package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/medreport/internal/buildinfo"
	"github.com/dmitrijs2005/medreport/internal/client/cli"
	"github.com/dmitrijs2005/medreport/internal/client/client"
	"github.com/dmitrijs2005/medreport/internal/client/config"
	"github.com/dmitrijs2005/medreport/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/medreport/internal/client/services"
	"github.com/dmitrijs2005/medreport/internal/client/session"
	"github.com/dmitrijs2005/medreport/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	store := session.NewStore(db, cookies.NewSQLiteRepository(db), logger)
	if n, err := store.Purge(ctx); err != nil {
		logger.Warn(ctx, "cookie purge failed", "error", err)
	} else if n > 0 {
		logger.Debug(ctx, "expired cookies purged", "count", n)
	}
	router := cli.NewRouter()

	api, err := client.NewHTTPClient(cfg.APIURL, store,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLoginPath(cfg.LoginPath),
		client.WithRedirector(router),
		client.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}

	app := cli.NewApp(ctx, cli.Deps{
		Auth:     services.NewAuthService(api, store, cfg.SessionTTL),
		Reports:  services.NewReportService(api, logger),
		Sessions: store,
		Router:   router,
		Logger:   logger,
		In:       os.Stdin,
		Out:      os.Stdout,
	})

	logger.Debug(ctx, "starting", "api_url", cfg.APIURL, "db", cfg.DBPath)
	app.Run(ctx)
	return nil
}
