// Package profile defines the user profile collected during onboarding and
// the contract every profile store implements.
package profile

import (
	"context"
	"errors"
	"fmt"
)

// AgeRange is one of the onboarding age buckets. The zero value means the
// user has not picked one.
type AgeRange string

const (
	AgeUnset  AgeRange = ""
	Age0To12  AgeRange = "0-12"
	Age13To18 AgeRange = "13-18"
	Age19To30 AgeRange = "19-30"
	Age31To50 AgeRange = "31-50"
	Age51To65 AgeRange = "51-65"
	Age65Plus AgeRange = "65+"
)

// AgeRanges returns the selectable buckets in picker order.
func AgeRanges() []AgeRange {
	return []AgeRange{Age0To12, Age13To18, Age19To30, Age31To50, Age51To65, Age65Plus}
}

// Valid reports whether a is unset or one of AgeRanges.
func (a AgeRange) Valid() bool {
	if a == AgeUnset {
		return true
	}
	for _, r := range AgeRanges() {
		if a == r {
			return true
		}
	}
	return false
}

// Needs are the need-category toggles from onboarding.
type Needs struct {
	EmergencyShelter  bool `json:"emergency_shelter"`
	AffordableHousing bool `json:"affordable_housing"`
	FoodBank          bool `json:"food_bank"`
	FoodDeals         bool `json:"food_deals"`
	SkillBuilding     bool `json:"skill_building"`
	Scholarship       bool `json:"scholarship"`
	MentorMatch       bool `json:"mentor_match"`
}

// Any reports whether at least one need is selected.
func (n Needs) Any() bool {
	return n != Needs{}
}

// Profile is the persisted user profile.
type Profile struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	PreferredName string   `json:"preferred_name"`
	AgeRange      AgeRange `json:"age_range"`
	Needs         Needs    `json:"needs"`
}

// DisplayName is the name shown in the profile header: the preferred name
// when set, otherwise the first name.
func (p Profile) DisplayName() string {
	if p.PreferredName != "" {
		return p.PreferredName
	}
	return p.FirstName
}

// ErrInvalidProfile is returned when a profile cannot be saved as given.
var ErrInvalidProfile = errors.New("invalid profile")

// ErrOwnerRequired is returned when a store is called without an owner.
var ErrOwnerRequired = errors.New("profile owner is required")

// Validate checks a profile before it is saved.
func Validate(p Profile) error {
	if !p.AgeRange.Valid() {
		return fmt.Errorf("%w: unknown age range %q", ErrInvalidProfile, p.AgeRange)
	}
	return nil
}

// Store loads and saves one profile per owner. Load returns the zero
// Profile when nothing has been saved. Storage faults are returned as
// *StorageError and are never swallowed.
type Store interface {
	Load(ctx context.Context, owner string) (Profile, error)
	Save(ctx context.Context, owner string, p Profile) error
}
