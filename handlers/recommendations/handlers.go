package recommendations

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"uplift/backend/handlers/auth"
	"uplift/backend/services/recommend"
	"uplift/backend/services/scholarship"
)

// GetOptionsHandler returns the values each scholarship picker offers.
// Used by: /api/recommendations/options
func GetOptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scholarship.Options())
	}
}

// RecommendHandler answers one scholarship query. The body is always a
// Recommendation; invalid input is reported with 422.
// Used by: POST /api/recommendations
func RecommendHandler(svc *recommend.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var q scholarship.Query
		if !auth.DecodeJSON(w, r, &q, false) {
			return
		}

		deviceID, _ := auth.DeviceID(r.Context())
		rec := svc.Recommend(r.Context(), q)
		logger.Debug("Answered recommendation",
			zap.String("device_id", deviceID),
			zap.Bool("available", rec.Available),
		)

		if rec.Failure == recommend.FailureInvalidInput {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		json.NewEncoder(w).Encode(rec)
	}
}
