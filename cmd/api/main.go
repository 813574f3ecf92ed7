package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/alecthomas/kingpin"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/export"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	reportHandler "github.com/MrJamesThe3rd/tally/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func main() {
	host := kingpin.Flag("host", "Address to bind to").Default("127.0.0.1").String()
	port := kingpin.Flag("port", "Port to listen on").Short('p').Default("5050").Int()
	debug := kingpin.Flag("debug", "Enable debug logging").Short('d').Bool()
	kingpin.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	// Optional; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		transactionService = transaction.NewService(txStore.New(cfg.Data.File))
		reportService      = report.NewService(transactionService)
		importService      = importer.NewService()
		exportService      = export.NewService(transactionService, reportService)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		reportH      = reportHandler.NewHandler(reportService)
		importH      = importHandler.NewHandler(importService, transactionService)
		exportH      = exportHandler.NewHandler(exportService)
	)

	router := tallyHttp.New(transactionH, reportH, importH, exportH, cfg.CORS.Origins)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", addr, "data", cfg.Data.File)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
