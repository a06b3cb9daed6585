package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/subosito/gotenv"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/config"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/domain/ledger"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/domain/sans"
	httpx "github.com/m4cd4r4/Assets-App-WA-Region/internal/infra/http"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/infra/logger"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/store"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/ui"
)

func main() {
	cfgPath := flag.String("config", "config/example.yaml", "config file")
	workbook := flag.String("workbook", "", "workbook path (overrides config and is saved back)")
	flag.Parse()

	_ = gotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.App.Env)

	path := cfg.Workbook.Path
	if *workbook != "" {
		path = *workbook
		if err := config.SaveWorkbookPath(*cfgPath, path); err != nil {
			log.Warn("could not persist workbook path", "err", err)
		}
	}
	if path == "" {
		log.Error("no workbook configured; set workbook.path or pass -workbook")
		os.Exit(1)
	}

	st := store.New(path)
	ds, err := st.Load()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Error("workbook not found", "path", path)
		} else {
			log.Error("workbook load failed", "err", err)
		}
		os.Exit(1)
	}
	log.Info("workbook loaded", "path", path, "sans", len(ds.SANs))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	plotsDir := cfg.Report.Dir
	if plotsDir == "" {
		plotsDir = filepath.Join(filepath.Dir(path), "Plots")
	}

	reg := sans.NewRegistry(ds)
	upd := ledger.NewUpdater(ds, st, reg, log)
	app := ui.New(log, ds, reg, upd, plotsDir, os.Stdin, os.Stdout)

	if err := app.Run(ctx); err != nil {
		log.Error("ui error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
