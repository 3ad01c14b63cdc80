package profile

import (
	"fmt"
	"strconv"
)

// Keys of the flat key-value schema. They match the keys the mobile app
// already writes to device storage.
const (
	KeyFirstName         = "firstName"
	KeyLastName          = "lastName"
	KeyPreferredName     = "preferred"
	KeyAgeRange          = "age"
	KeyEmergencyShelter  = "emergencyShelter"
	KeyAffordableHousing = "affordHouse"
	KeyFoodBank          = "foodBanks"
	KeyFoodDeals         = "deals"
	KeySkillBuilding     = "skillBuild"
	KeyScholarship       = "scholarship"
	KeyMentorMatch       = "mentorMatch"
)

// Keys returns every key of the schema in a fixed order.
func Keys() []string {
	return []string{
		KeyFirstName, KeyLastName, KeyPreferredName, KeyAgeRange,
		KeyEmergencyShelter, KeyAffordableHousing, KeyFoodBank, KeyFoodDeals,
		KeySkillBuilding, KeyScholarship, KeyMentorMatch,
	}
}

func (n *Needs) flags() map[string]*bool {
	return map[string]*bool{
		KeyEmergencyShelter:  &n.EmergencyShelter,
		KeyAffordableHousing: &n.AffordableHousing,
		KeyFoodBank:          &n.FoodBank,
		KeyFoodDeals:         &n.FoodDeals,
		KeySkillBuilding:     &n.SkillBuilding,
		KeyScholarship:       &n.Scholarship,
		KeyMentorMatch:       &n.MentorMatch,
	}
}

// Encode flattens a profile into the key-value schema. Every key is
// present so that saving overwrites previous values.
func Encode(p Profile) map[string]string {
	kv := map[string]string{
		KeyFirstName:     p.FirstName,
		KeyLastName:      p.LastName,
		KeyPreferredName: p.PreferredName,
		KeyAgeRange:      string(p.AgeRange),
	}
	for key, flag := range p.Needs.flags() {
		kv[key] = strconv.FormatBool(*flag)
	}
	return kv
}

// Decode rebuilds a profile from stored pairs. Missing keys take their zero
// value; unknown keys are ignored. A value that cannot be parsed is an error.
func Decode(kv map[string]string) (Profile, error) {
	p := Profile{
		FirstName:     kv[KeyFirstName],
		LastName:      kv[KeyLastName],
		PreferredName: kv[KeyPreferredName],
		AgeRange:      AgeRange(kv[KeyAgeRange]),
	}
	if !p.AgeRange.Valid() {
		return Profile{}, fmt.Errorf("stored %s %q is not a known age range", KeyAgeRange, kv[KeyAgeRange])
	}
	for key, flag := range p.Needs.flags() {
		raw, ok := kv[key]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Profile{}, fmt.Errorf("stored %s %q is not a boolean", key, raw)
		}
		*flag = v
	}
	return p, nil
}
