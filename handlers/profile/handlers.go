package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"uplift/backend/handlers/auth"
	"uplift/backend/services/directory"
	profilesvc "uplift/backend/services/profile"
)

// StorageStatus maps a storage failure to the status returned to clients.
func StorageStatus(kind profilesvc.FaultKind) int {
	switch kind {
	case profilesvc.FaultUnavailable:
		return http.StatusServiceUnavailable
	case profilesvc.FaultFull:
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}

// WriteStoreError writes a store failure as JSON. Invalid profiles are 400;
// storage faults use StorageStatus with the fault kind in the body.
func WriteStoreError(w http.ResponseWriter, logger *zap.Logger, deviceID string, err error) {
	if errors.Is(err, profilesvc.ErrInvalidProfile) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	kind := profilesvc.KindOf(err)
	if kind == "" {
		kind = profilesvc.FaultUnknown
	}
	logger.Error("Profile storage error",
		zap.String("device_id", deviceID),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StorageStatus(kind))
	json.NewEncoder(w).Encode(StorageErrorResponse{Error: "Profile storage error", Kind: kind})
}

func deviceFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	deviceID, ok := auth.DeviceID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
	}
	return deviceID, ok
}

// GetProfileHandler returns the caller's profile. A device that never saved
// one gets the empty profile.
// Used by: GET /api/me/profile
func GetProfileHandler(store profilesvc.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		deviceID, ok := deviceFromRequest(w, r)
		if !ok {
			return
		}

		p, err := store.Load(r.Context(), deviceID)
		if err != nil {
			WriteStoreError(w, logger, deviceID, err)
			return
		}

		json.NewEncoder(w).Encode(ProfileResponse{
			DeviceID:    deviceID,
			DisplayName: p.DisplayName(),
			Profile:     p,
		})
	}
}

// UpdateProfileHandler replaces the caller's profile.
// Used by: PUT /api/me/profile
func UpdateProfileHandler(store profilesvc.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		deviceID, ok := deviceFromRequest(w, r)
		if !ok {
			return
		}

		var p profilesvc.Profile
		if !auth.DecodeJSON(w, r, &p, false) {
			return
		}

		if err := store.Save(r.Context(), deviceID, p); err != nil {
			WriteStoreError(w, logger, deviceID, err)
			return
		}

		logger.Info("Saved profile", zap.String("device_id", deviceID))
		json.NewEncoder(w).Encode(ProfileResponse{
			DeviceID:    deviceID,
			DisplayName: p.DisplayName(),
			Profile:     p,
		})
	}
}

// GetSectionsHandler returns the directory sections relevant to the
// caller's needs, with their listings. "section" asks for one section by
// name whether or not it matches the caller's needs.
// Used by: GET /api/me/sections
func GetSectionsHandler(store profilesvc.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		deviceID, ok := deviceFromRequest(w, r)
		if !ok {
			return
		}

		var requested []directory.Section
		if name := r.URL.Query().Get("section"); name != "" {
			section, ok := directory.ParseSection(name)
			if !ok {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "Unknown section"})
				return
			}
			requested = []directory.Section{section}
		}

		p, err := store.Load(r.Context(), deviceID)
		if err != nil {
			WriteStoreError(w, logger, deviceID, err)
			return
		}

		relevant := directory.Relevant(p.Needs)
		if requested == nil {
			requested = relevant
		}

		resp := SectionsResponse{DeviceID: deviceID, Sections: []SectionResponse{}}
		for _, s := range requested {
			resp.Sections = append(resp.Sections, SectionResponse{
				Section:  s,
				Relevant: slices.Contains(relevant, s),
				Listings: directory.Listings(s),
			})
		}
		json.NewEncoder(w).Encode(resp)
	}
}
