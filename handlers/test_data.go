// Note: To generate test profiles, start with SEED_ENABLED=true and use:
// curl -X POST "http://localhost:8080/api/test/generate-profiles?count=5"

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"uplift/backend/handlers/auth"
	profilesvc "uplift/backend/services/profile"
)

// MaxGeneratedProfiles bounds one seed request.
const MaxGeneratedProfiles = 150

type GeneratedDevice struct {
	DeviceID    string `json:"device_id"`
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

type GenerateResponse struct {
	Created int               `json:"created"`
	Failed  int               `json:"failed"`
	Seed    int64             `json:"seed"`
	Devices []GeneratedDevice `json:"devices"`
}

// GenerateTestProfilesHandler saves fake profiles for new devices and
// returns a token for each. "seed" makes the data reproducible.
// Used by: /api/test/generate-profiles
func GenerateTestProfilesHandler(store profilesvc.Store, tokens *auth.Tokens, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		// Get count parameter, default to 10 if not provided
		count := 10
		if countParam := r.URL.Query().Get("count"); countParam != "" {
			parsedCount, err := strconv.Atoi(countParam)
			if err != nil || parsedCount < 1 || parsedCount > MaxGeneratedProfiles {
				http.Error(w, "Count must be between 1 and 150", http.StatusBadRequest)
				return
			}
			count = parsedCount
		}

		seed := int64(rand.Uint64() >> 1)
		if seedParam := r.URL.Query().Get("seed"); seedParam != "" {
			parsedSeed, err := strconv.ParseInt(seedParam, 10, 64)
			if err != nil {
				http.Error(w, "Seed must be an integer", http.StatusBadRequest)
				return
			}
			seed = parsedSeed
		}
		faker := gofakeit.New(seed)

		resp := GenerateResponse{Seed: seed, Devices: []GeneratedDevice{}}
		for i := 0; i < count; i++ {
			deviceID := uuid.NewString()
			p := profilesvc.Fake(faker)

			if err := store.Save(r.Context(), deviceID, p); err != nil {
				logger.Warn("Error saving generated profile",
					zap.Int("index", i+1),
					zap.String("kind", string(profilesvc.KindOf(err))),
					zap.Error(err),
				)
				resp.Failed++
				continue
			}

			token, _, err := tokens.GenerateToken(deviceID)
			if err != nil {
				logger.Warn("Error generating token for generated profile", zap.Int("index", i+1), zap.Error(err))
				resp.Failed++
				continue
			}

			resp.Created++
			resp.Devices = append(resp.Devices, GeneratedDevice{
				DeviceID:    deviceID,
				Token:       token,
				DisplayName: p.DisplayName(),
			})
		}

		logger.Info("Generated test profiles", zap.Int("created", resp.Created), zap.Int("failed", resp.Failed))
		if resp.Created == 0 {
			w.WriteHeader(http.StatusInternalServerError)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
