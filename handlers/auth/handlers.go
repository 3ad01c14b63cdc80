package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxDeviceIDLength bounds client-chosen device IDs.
const MaxDeviceIDLength = 128

type DeviceRequest struct {
	DeviceID string `json:"device_id"`
}

type DeviceResponse struct {
	DeviceID  string    `json:"device_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DeviceHandler issues a token for a device. A device that sends no ID is
// given a new one.
// Used by: /api/auth/device
// Response: DeviceResponse
func DeviceHandler(tokens *Tokens, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req DeviceRequest
		if !DecodeJSON(w, r, &req, true) {
			return
		}

		deviceID := strings.TrimSpace(req.DeviceID)
		if deviceID == "" {
			deviceID = uuid.NewString()
		}
		if len(deviceID) > MaxDeviceIDLength {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "device_id is too long"})
			return
		}

		token, expires, err := tokens.GenerateToken(deviceID)
		if err != nil {
			logger.Error("Error generating token", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error generating token"})
			return
		}

		logger.Info("Issued device token", zap.String("device_id", deviceID))
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeviceResponse{
			DeviceID:  deviceID,
			Token:     token,
			ExpiresAt: expires,
		})
	}
}
