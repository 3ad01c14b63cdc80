package profile

import (
	"uplift/backend/services/directory"
	profilesvc "uplift/backend/services/profile"
)

type ProfileResponse struct {
	DeviceID    string             `json:"device_id"`
	DisplayName string             `json:"display_name"`
	Profile     profilesvc.Profile `json:"profile"`
}

type SectionResponse struct {
	Section  directory.Section   `json:"section"`
	Relevant bool                `json:"relevant"`
	Listings []directory.Listing `json:"listings"`
}

type SectionsResponse struct {
	DeviceID string            `json:"device_id"`
	Sections []SectionResponse `json:"sections"`
}

type StorageErrorResponse struct {
	Error string               `json:"error"`
	Kind  profilesvc.FaultKind `json:"kind"`
}
