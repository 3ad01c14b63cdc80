package profile

import "github.com/brianvoe/gofakeit/v6"

// Fake returns a valid profile filled with data from f.
func Fake(f *gofakeit.Faker) Profile {
	ages := AgeRanges()
	return Profile{
		FirstName:     f.FirstName(),
		LastName:      f.LastName(),
		PreferredName: f.Username(),
		AgeRange:      ages[f.IntRange(0, len(ages)-1)],
		Needs: Needs{
			EmergencyShelter:  f.Bool(),
			AffordableHousing: f.Bool(),
			FoodBank:          f.Bool(),
			FoodDeals:         f.Bool(),
			SkillBuilding:     f.Bool(),
			Scholarship:       f.Bool(),
			MentorMatch:       f.Bool(),
		},
	}
}
