// Report runner: loads the workbook and writes one inventory chart per
// invocation. Meant to be launched as its own process per location set.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/config"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/infra/logger"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/report"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/store"
)

func main() {
	cfgPath := flag.String("config", "config/example.yaml", "config file")
	set := flag.String("set", "combined", "location set: "+strings.Join(report.SetNames(), "|"))
	flag.Parse()

	_ = gotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.App.Env)

	if cfg.Workbook.Path == "" {
		log.Error("no workbook configured; set workbook.path")
		os.Exit(1)
	}

	ds, err := store.New(cfg.Workbook.Path).Load()
	if err != nil {
		log.Error("workbook load failed", "err", err)
		os.Exit(1)
	}

	plotsDir := cfg.Report.Dir
	if plotsDir == "" {
		plotsDir = filepath.Join(filepath.Dir(cfg.Workbook.Path), "Plots")
	}

	path, err := report.Write(ds, *set, plotsDir)
	if err != nil {
		log.Error("report failed", "set", *set, "err", err)
		os.Exit(1)
	}
	log.Info("report saved", "set", *set, "path", path)
}
