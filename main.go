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

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/claim-poster/cliparse"
	"github.com/danielhkuo/claim-poster/distriator"
	"github.com/danielhkuo/claim-poster/render"
	"github.com/danielhkuo/claim-poster/router"
	"github.com/danielhkuo/claim-poster/session"
	"github.com/danielhkuo/claim-poster/signer"
	"github.com/danielhkuo/claim-poster/workflow"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the session database
	dbConn, err := sql.Open("sqlite", cfg.SessionDBPath)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := session.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Session database ready", "path", cfg.SessionDBPath)

	store := session.NewStore(dbConn)

	// The signer bridge is optional; without one, operations that need a
	// signature report it as missing instead of failing at startup.
	var sig signer.Signer
	if cfg.SignerBridgeURL != "" {
		sig = signer.NewBridge(cfg.SignerBridgeURL, cfg.HTTPTimeout)
		slog.Info("Signer bridge configured", "url", cfg.SignerBridgeURL)
	} else {
		slog.Warn("No signer bridge configured; signing operations will be unavailable")
	}

	api := distriator.New(cfg.APIBase, cfg.ImageHost, cfg.HTTPTimeout, store)

	wf := workflow.New(store, sig, api)
	wf.Restore(context.Background())

	renderer, err := render.New()
	if err != nil {
		slog.Error("template parsing failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(wf, renderer)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
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
