package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/verusns/internal/api"
	"github.com/mtlprog/verusns/internal/config"
	"github.com/mtlprog/verusns/internal/database"
	"github.com/mtlprog/verusns/internal/export"
	"github.com/mtlprog/verusns/internal/snapshot"
	"github.com/mtlprog/verusns/internal/worker"
)

// sheetWriters builds the export destinations enabled in cfg.
func sheetWriters(ctx context.Context, cfg config.Config) (export.MultiWriter, error) {
	var writers export.MultiWriter
	if cfg.XLSXExportPath != "" {
		writers = append(writers, export.NewXLSXWriter(cfg.XLSXExportPath))
	}
	if cfg.GoogleSheetsID != "" && cfg.GoogleCredentials != "" {
		sw, err := export.NewSheetsWriter(ctx, cfg.GoogleSheetsID, cfg.GoogleCredentials)
		if err != nil {
			return nil, fmt.Errorf("creating sheets writer: %w", err)
		}
		writers = append(writers, sw)
	}
	return writers, nil
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "take a snapshot and write it to the configured spreadsheets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "xlsx", Usage: "write to this Excel workbook"},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			if c.IsSet("xlsx") {
				cfg.XLSXExportPath = c.String("xlsx")
			}

			writers, err := sheetWriters(c.Context, cfg)
			if err != nil {
				return err
			}
			if len(writers) == 0 {
				return cli.Exit("export: no destination, pass --xlsx or configure Google Sheets", 2)
			}

			client := newClient(cfg)
			snapshots := snapshot.NewService(newNamespaceService(cfg, client), nil)
			snap, err := snapshots.Take(c.Context, cfg.Chain)
			if err != nil {
				return err
			}

			if err := export.NewService(writers).Export(c.Context, snap); err != nil {
				return err
			}
			slog.Info("export completed", "chain", snap.Chain, "namespaces", len(snap.Namespaces))
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and the periodic snapshot worker",
		Action: func(c *cli.Context) error {
			return serve(c.Context, configFrom(c))
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	client := newClient(cfg)
	namespaces := newNamespaceService(cfg, client)

	deps := api.Deps{Namespaces: namespaces, Health: client, CurrencyCacheTTL: cfg.CurrencyCacheTTL}

	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		migrationsSub, err := fs.Sub(migrationsFS, "migrations")
		if err != nil {
			return fmt.Errorf("creating migrations sub-fs: %w", err)
		}
		if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		snapshots := snapshot.NewService(namespaces, snapshot.NewPgRepository(pool),
			snapshot.WithLogger(slog.Default().With("component", "snapshot")))
		deps.Snapshots = snapshots

		writers, err := sheetWriters(ctx, cfg)
		if err != nil {
			return err
		}
		var hook worker.AfterSnapshotHook
		if len(writers) > 0 {
			hook = export.NewService(writers)
		}

		refreshWorker := worker.NewRefreshWorker(snapshots, cfg.Chain, cfg.RefreshInterval, hook)
		go refreshWorker.Run(ctx)
	} else {
		slog.Warn("DATABASE_URL not set, snapshots and the refresh worker are disabled")
	}

	if cfg.AdminAPIKey == "" && deps.Snapshots != nil {
		slog.Warn("ADMIN_API_KEY not set, generate endpoint is unprotected")
	}

	srv := api.NewServer(cfg.HTTPPort, cfg.Chain, deps, cfg.AdminAPIKey)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr, "chain", cfg.Chain)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP server: %w", err)
	default:
	}
	slog.Info("shutdown complete")
	return nil
}
