package main

import (
	"context"
	"errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"uplift/backend/handlers"
	"uplift/backend/handlers/auth"
	"uplift/backend/handlers/profile"
	"uplift/backend/handlers/recommendations"
	"uplift/backend/handlers/resources"
	"uplift/backend/handlers/status"
	"uplift/backend/services/catalog"
	profilesvc "uplift/backend/services/profile"
	"uplift/backend/services/recommend"
)

type app struct {
	logger      *zap.Logger
	catalog     *catalog.Catalog
	store       profilesvc.Store
	checks      []status.Check
	tokens      *auth.Tokens
	recommender *recommend.Service
	model       string
	seedEnabled bool
}

func (a *app) routes() *mux.Router {
	r := mux.NewRouter()
	log := a.logger.Named("http")

	// Public routes (no auth required)
	checks := append([]status.Check{{Name: "catalog", Ping: catalogCheck(a.catalog)}}, a.checks...)
	r.HandleFunc("/health", status.HealthHandler(a.model, checks...)).Methods("GET")
	r.HandleFunc("/api/auth/device", auth.DeviceHandler(a.tokens, log)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/categories", resources.GetCategoriesHandler()).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/map", resources.GetMapConfigHandler(a.catalog)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/resources", resources.GetResourcesHandler(a.catalog)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/resources/{id}", resources.GetResourceHandler(a.catalog)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/recommendations/options", recommendations.GetOptionsHandler()).Methods("GET", "OPTIONS")
	r.HandleFunc("/ws/recommendations", recommendations.HandleRecommendationWebSocket(a.recommender, a.tokens, log))
	if a.seedEnabled {
		r.HandleFunc("/api/test/generate-profiles", handlers.GenerateTestProfilesHandler(a.store, a.tokens, log)).Methods("POST", "OPTIONS")
	}

	// Create a subrouter for protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(a.tokens.AuthMiddleware)

	// Me routes
	protected.HandleFunc("/me/profile", profile.GetProfileHandler(a.store, log)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/me/profile", profile.UpdateProfileHandler(a.store, log)).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/me/sections", profile.GetSectionsHandler(a.store, log)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/me/status", status.GetMyStatusHandler(a.store, log)).Methods("GET", "OPTIONS")

	// Recommendation routes
	protected.HandleFunc("/recommendations", recommendations.RecommendHandler(a.recommender, log)).Methods("POST", "OPTIONS")

	return r
}

func catalogCheck(cat *catalog.Catalog) func(context.Context) error {
	return func(context.Context) error {
		if cat.Len() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	}
}
