package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/auth"
	"github.com/salesdesk/salesdesk/internal/config"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/internal/store"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run preference store migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.Dev() {
		log.SetLevel(logrus.DebugLevel)
	}
	if cfg.SessionSecret != "" {
		auth.SetSecret(cfg.SessionSecret)
	}

	dbConn, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("Failed to open preference store")
	}

	if *migrateOnlyFlag {
		if err := store.Migrate(dbConn); err != nil {
			log.WithError(err).Fatal("Migration failed")
		}
		log.Info("Migrations completed successfully")
		return
	}

	if err := store.Migrate(dbConn); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}

	api := crm.New(cfg.APIBaseURL, cfg.APIRequestTimeout(), log)
	app := NewApp(api, store.NewPrefs(dbConn), log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      withLogging(log, app),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port": cfg.Port,
			"api":  cfg.APIBaseURL,
			"dev":  cfg.Dev(),
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Error during shutdown")
	}
	log.Info("Server stopped gracefully")
}

// withLogging adds request logging middleware.
func withLogging(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
