package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Haricane11/OptiWareUi-sub000/internal/config"
	"github.com/Haricane11/OptiWareUi-sub000/internal/database"
	"github.com/Haricane11/OptiWareUi-sub000/internal/handlers"
	"github.com/Haricane11/OptiWareUi-sub000/internal/repository"
	"github.com/Haricane11/OptiWareUi-sub000/internal/services/floorplan"
	"github.com/Haricane11/OptiWareUi-sub000/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetReportTimestamp(true)

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatalf("Failed to load layout rules: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema; external databases only when DB_ALTER is set
	repo := repository.New(db.DB)
	if db.Embedded() || cfg.Database.Alter {
		log.Info("🚀 Synchronizing database schema...")
		if err := repo.Migrate(context.Background()); err != nil {
			log.Warnf("⚠️ Migration warning: %v", err)
		} else {
			log.Info("✅ Schema synchronized successfully")
		}
	}

	// 4. Editing service and live floor events
	hub := websocket.NewHub()
	go hub.Run()

	svc := floorplan.NewService(repo, floorplan.Options{
		Rules:     rules,
		Publisher: hub,
		Logger:    log.Default(),
	})

	// 5. Set up HTTP router
	router := handlers.NewRouter(svc, hub)

	// 6. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Infof("🚀 Floor-plan server starting on port %s (%s, grid %.2fm)", cfg.Port, cfg.Env, rules.GridStep)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Warnf("⚠️ Received signal: %v. Shutting down gracefully...", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}

	// Disconnect websocket clients
	hub.Stop()

	// Close database (this also stops embedded PostgreSQL)
	log.Info("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Errorf("Database close error: %v", err)
	}

	log.Info("✅ Shutdown complete")
}
