package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petermazzocco/temple-desk/internal/auth"
	"github.com/petermazzocco/temple-desk/internal/config"
	"github.com/petermazzocco/temple-desk/internal/notify"
	"github.com/petermazzocco/temple-desk/internal/router"
	"github.com/petermazzocco/temple-desk/internal/store"
)

func main() {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Database connection; nothing is served until it is reachable
	db, err := store.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Connected successfully to %s database", cfg.DatabaseType)

	// SMS
	var sender notify.Sender = notify.LogSender{}
	if cfg.SMS.Enabled() {
		sender = notify.NewTwilioSender(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.From)
	} else {
		log.Println("SMS gateway not configured, ticket confirmations will only be logged")
	}
	dispatcher := notify.NewDispatcher(sender)

	accounts := auth.NewAccountService(db, auth.NewTokenIssuer(cfg.JWTSecret))

	r := router.NewRouter(router.Deps{
		DB:             db,
		Accounts:       accounts,
		Notifier:       dispatcher,
		MaxUploadBytes: cfg.MaxUploadMB << 20,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running on port %d", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("Shutdown signal received: %s", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	dispatcher.Wait()
	if err := db.Close(ctx); err != nil {
		log.Printf("Database close error: %v", err)
	}
}
