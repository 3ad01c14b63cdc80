// Package directory holds the static listings behind the housing, food
// deals, and education screens, and picks the ones a profile cares about.
package directory

import (
	"strings"

	"uplift/backend/services/profile"
)

// Section names a group of listings.
type Section string

const (
	SectionHousing   Section = "housing"
	SectionFood      Section = "food"
	SectionEducation Section = "education"
	SectionMentors   Section = "mentors"
)

// Sections returns every section in display order.
func Sections() []Section {
	return []Section{SectionHousing, SectionFood, SectionEducation, SectionMentors}
}

// ParseSection matches a section name case-insensitively.
func ParseSection(s string) (Section, bool) {
	for _, sec := range Sections() {
		if strings.EqualFold(strings.TrimSpace(s), string(sec)) {
			return sec, true
		}
	}
	return "", false
}

// Listing is one entry on a directory screen. Detail carries the capacity,
// opening hours, or role line shown under the description.
type Listing struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

var listings = map[Section][]Listing{
	SectionHousing: {
		{Name: "Hope Haven Shelter", Kind: "Emergency Housing", Description: "Provides short-term housing and meals for individuals and families facing homelessness.", Detail: "Capacity: 50 beds"},
		{Name: "Bright Futures Transitional Housing", Kind: "Transitional Housing", Description: "Supports individuals moving from homelessness to permanent housing, offering counseling and job training.", Detail: "Capacity: 30 units"},
		{Name: "Affordable Living Community", Kind: "Affordable Housing", Description: "Offers low-income housing options with rent assistance programs.", Detail: "Capacity: 100 apartments"},
		{Name: "Safe Haven Women's Shelter", Kind: "Emergency Housing", Description: "A safe space for women and children escaping domestic violence, with support services included.", Detail: "Capacity: 25 beds"},
	},
	SectionFood: {
		{Name: "Community Food Bank", Kind: "Food Bank", Description: "Offers free groceries and pantry items every Wednesday and Saturday for low-income families.", Detail: "Open: 9 AM - 3 PM"},
		{Name: "Hope Soup Kitchen", Kind: "Soup Kitchen", Description: "Provides hot meals daily, including breakfast and dinner, with vegetarian options available.", Detail: "Daily: 7 AM - 7 PM"},
		{Name: "Fresh Market Discounts", Kind: "Grocery Store", Description: "10% off fresh produce for families receiving SNAP benefits every Friday.", Detail: "Fridays: 8 AM - 8 PM"},
		{Name: "Local Farmer's Market", Kind: "Community Event", Description: "Distributes surplus produce from local farms at discounted prices every Sunday.", Detail: "Sundays: 10 AM - 2 PM"},
	},
	SectionEducation: {
		{Name: "Coursera", Kind: "Online Courses", Description: "Free Online Courses"},
		{Name: "edX", Kind: "Online Courses", Description: "University-level Courses"},
		{Name: "Khan Academy", Kind: "Online Courses", Description: "Skill Development"},
	},
	SectionMentors: {
		{Name: "Jane Doe", Kind: "Mentor", Detail: "Career Mentor"},
		{Name: "John Smith", Kind: "Mentor", Detail: "Tech Mentor"},
		{Name: "Emily Johnson", Kind: "Mentor", Detail: "Academic Advisor"},
	},
}

// Listings returns a copy of the listings for section, or nil for an
// unknown section.
func Listings(section Section) []Listing {
	src, ok := listings[section]
	if !ok {
		return nil
	}
	out := make([]Listing, len(src))
	copy(out, src)
	return out
}

// Relevant returns the sections that match the needs a profile asked for.
// A profile with no needs sees everything.
func Relevant(needs profile.Needs) []Section {
	if !needs.Any() {
		return Sections()
	}
	var out []Section
	if needs.EmergencyShelter || needs.AffordableHousing {
		out = append(out, SectionHousing)
	}
	if needs.FoodBank || needs.FoodDeals {
		out = append(out, SectionFood)
	}
	if needs.SkillBuilding || needs.Scholarship {
		out = append(out, SectionEducation)
	}
	if needs.MentorMatch {
		out = append(out, SectionMentors)
	}
	return out
}
