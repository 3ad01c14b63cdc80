package status

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"uplift/backend/handlers/auth"
	profilehandlers "uplift/backend/handlers/profile"
	profilesvc "uplift/backend/services/profile"
)

// Check is one component reported by the health endpoint. A nil Ping
// always reports ok.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Model      string            `json:"model,omitempty"`
	Components map[string]string `json:"components"`
	CheckedAt  time.Time         `json:"checked_at"`
}

// Status represents where a device is in onboarding.
type Status struct {
	DeviceID   string    `json:"device_id"`
	Status     string    `json:"status"`
	HasNeeds   bool      `json:"has_needs"`
	LastUpdate time.Time `json:"last_update"`
}

const (
	StatusOnboarding = "onboarding"
	StatusActive     = "active"
)

// HealthHandler pings each component and reports 503 when any fails.
// Used by: /health
func HealthHandler(model string, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{
			Status:     "ok",
			Model:      model,
			Components: make(map[string]string, len(checks)),
			CheckedAt:  time.Now().UTC(),
		}
		for _, c := range checks {
			if c.Ping == nil {
				resp.Components[c.Name] = "ok"
				continue
			}
			if err := c.Ping(ctx); err != nil {
				resp.Components[c.Name] = err.Error()
				resp.Status = "degraded"
				continue
			}
			resp.Components[c.Name] = "ok"
		}

		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}

// UserStatus derives the onboarding status from a saved profile. A device
// is active once it has a first name and an age range.
func UserStatus(p profilesvc.Profile) string {
	if p.FirstName != "" && p.AgeRange != profilesvc.AgeUnset {
		return StatusActive
	}
	return StatusOnboarding
}

// GetMyStatusHandler returns the onboarding status of the authenticated
// device.
// Used by: /api/me/status
func GetMyStatusHandler(store profilesvc.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		deviceID, ok := auth.DeviceID(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}

		p, err := store.Load(r.Context(), deviceID)
		if err != nil {
			profilehandlers.WriteStoreError(w, logger, deviceID, err)
			return
		}

		json.NewEncoder(w).Encode(Status{
			DeviceID:   deviceID,
			Status:     UserStatus(p),
			HasNeeds:   p.Needs.Any(),
			LastUpdate: time.Now().UTC(),
		})
	}
}
