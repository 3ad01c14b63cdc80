package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"uplift/backend/config"
	"uplift/backend/handlers/auth"
	"uplift/backend/logging"
	"uplift/backend/services/catalog"
	"uplift/backend/services/recommend"
	"uplift/backend/services/scholarship"
)

func main() {
	// Load environment variables from .env file
	cfg, err := config.Load(log.Printf)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "uplift-backend",
	})
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openProfileStore(ctx, cfg, logger.Named("profile"))
	if err != nil {
		logger.Fatal("Error opening profile store",
			zap.String("backend", cfg.ProfileBackend),
			zap.String("kind", string(profileFaultKind(err))),
			zap.Error(err),
		)
	}
	defer store.close()

	classifier, model := openClassifier(cfg, logger.Named("scholarship"))

	a := &app{
		logger:      logger,
		catalog:     catalog.Default(),
		store:       store.Store,
		checks:      store.checks,
		tokens:      auth.NewTokens(cfg.JWTSecretKey, cfg.TokenTTL),
		recommender: recommend.NewService(scholarship.NewPredictor(classifier), logger.Named("recommend")),
		model:       model,
		seedEnabled: cfg.SeedEnabled,
	}

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(a.routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Error shutting down server", zap.Error(err))
		}
	}()

	logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("profile_backend", cfg.ProfileBackend),
		zap.String("model", model),
		zap.Bool("seed_enabled", cfg.SeedEnabled),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server stopped", zap.Error(err))
	}
	logger.Info("Server stopped")
}
