package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"uplift/backend/services/profile"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		needs profile.Needs
		want  []Section
	}{
		{"no needs shows everything", profile.Needs{}, Sections()},
		{"shelter", profile.Needs{EmergencyShelter: true}, []Section{SectionHousing}},
		{"affordable housing", profile.Needs{AffordableHousing: true}, []Section{SectionHousing}},
		{"food deals and mentor", profile.Needs{FoodDeals: true, MentorMatch: true}, []Section{SectionFood, SectionMentors}},
		{"scholarship", profile.Needs{Scholarship: true}, []Section{SectionEducation}},
		{"skills and food bank", profile.Needs{SkillBuilding: true, FoodBank: true}, []Section{SectionFood, SectionEducation}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relevant(tt.needs))
		})
	}
}

func TestListings(t *testing.T) {
	assert.Len(t, Listings(SectionHousing), 4)
	assert.Len(t, Listings(SectionFood), 4)
	assert.Len(t, Listings(SectionEducation), 3)
	assert.Len(t, Listings(SectionMentors), 3)
	assert.Nil(t, Listings(Section("bogus")))

	got := Listings(SectionMentors)
	got[0].Name = "changed"
	assert.Equal(t, "Jane Doe", Listings(SectionMentors)[0].Name)
}

func TestParseSection(t *testing.T) {
	sec, ok := ParseSection(" Food ")
	assert.True(t, ok)
	assert.Equal(t, SectionFood, sec)

	_, ok = ParseSection("pets")
	assert.False(t, ok)
}
