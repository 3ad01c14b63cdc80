package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"uplift/backend/config"
	"uplift/backend/handlers/status"
	"uplift/backend/services/profile"
	"uplift/backend/services/profile/pgstore"
	"uplift/backend/services/profile/redisstore"
	"uplift/backend/services/profile/sqlitestore"
	"uplift/backend/services/scholarship"
)

type profileStore struct {
	profile.Store
	checks []status.Check
	close  func()
}

func profileFaultKind(err error) profile.FaultKind {
	if kind := profile.KindOf(err); kind != "" {
		return kind
	}
	return profile.FaultUnknown
}

// openProfileStore opens the backend named by cfg.ProfileBackend.
func openProfileStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (*profileStore, error) {
	switch cfg.ProfileBackend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return &profileStore{
			Store:  s,
			checks: []status.Check{{Name: "profile_store", Ping: s.Ping}},
			close:  func() { _ = s.Close() },
		}, nil

	case config.BackendPostgres:
		s, err := pgstore.Open(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return &profileStore{
			Store:  s,
			checks: []status.Check{{Name: "profile_store", Ping: s.Ping}},
			close:  func() { _ = s.Close() },
		}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		s := redisstore.New(client, redisstore.DefaultKeyPrefix, logger)
		if err := s.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, profile.NewStorageError("open", profile.FaultUnavailable, err)
		}
		return &profileStore{
			Store:  s,
			checks: []status.Check{{Name: "profile_store", Ping: s.Ping}},
			close:  func() { _ = client.Close() },
		}, nil

	case config.BackendMemory:
		logger.Warn("Using in-memory profile store; profiles are lost on restart")
		return &profileStore{
			Store:  profile.NewMemoryStore(),
			checks: []status.Check{{Name: "profile_store"}},
			close:  func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown profile backend %q", cfg.ProfileBackend)
}

// openClassifier picks the remote classifier when MODEL_ENDPOINT is set and
// the model artifact otherwise. A model that fails to load leaves the
// server running with every recommendation unavailable.
func openClassifier(cfg config.Config, logger *zap.Logger) (scholarship.Classifier, string) {
	if cfg.ModelEndpoint != "" {
		logger.Info("Using remote scholarship classifier", zap.String("endpoint", cfg.ModelEndpoint))
		return scholarship.NewRemoteClassifier(cfg.ModelEndpoint, cfg.ModelTimeout), "remote"
	}

	classifier, err := scholarship.LoadClassifier(cfg.ModelPath)
	if err != nil {
		logger.Error("Scholarship model failed to load; recommendations are unavailable",
			zap.String("path", cfg.ModelPath),
			zap.Error(err),
		)
		return classifier, ""
	}

	model := "embedded"
	if ac, ok := classifier.(*scholarship.ArtifactClassifier); ok {
		model = ac.Artifact().ID()
	}
	logger.Info("Loaded scholarship model", zap.String("model", model))
	return classifier, model
}
