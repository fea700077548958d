// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/mock-me/cliparse"
	"github.com/danielhkuo/mock-me/db"
	"github.com/danielhkuo/mock-me/middleware"
	"github.com/danielhkuo/mock-me/questionbank"
	"github.com/danielhkuo/mock-me/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load question bank
	bank := questionbank.Default()
	if cfg.QuestionBankFile != "" {
		bank, err = questionbank.Load(cfg.QuestionBankFile)
		if err != nil {
			slog.Error("question bank load failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Question bank loaded", "file", cfg.QuestionBankFile, "demos", len(bank.Demos()))
	}

	// Connect to the submission database, if any
	var dbConn *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err = db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
	} else {
		slog.Info("No database configured, submissions are not persisted")
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, bank)

	// Create server
	server := http.Server{
		Handler:           middleware.Recover(middleware.CORS(cfg.CORSOrigin, mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
