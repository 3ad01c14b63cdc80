package catalog

import (
	"fmt"
	"strings"
)

// Category is the closed set of resource kinds.
type Category string

const (
	FoodBank          Category = "food_bank"
	HousingShelter    Category = "housing_shelter"
	SoupKitchen       Category = "soup_kitchen"
	FoodDeal          Category = "food_deal"
	AffordableHousing Category = "affordable_housing"
)

var categoryLabels = map[Category]string{
	FoodBank:          "Food Bank",
	HousingShelter:    "Housing Shelter",
	SoupKitchen:       "Soup Kitchen",
	FoodDeal:          "Food Deal",
	AffordableHousing: "Affordable Housing",
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{FoodBank, HousingShelter, SoupKitchen, FoodDeal, AffordableHousing}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label is the human readable name shown on map pins and detail sheets.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// IsFood reports whether the category is driven by the map's food toggle.
func (c Category) IsFood() bool {
	return c == FoodBank || c == SoupKitchen || c == FoodDeal
}

// IsHousing reports whether the category is driven by the map's housing toggle.
func (c Category) IsHousing() bool {
	return c == HousingShelter || c == AffordableHousing
}

// ParseCategory accepts either the identifier ("food_bank") or the label
// ("Food Bank"), case-insensitively.
func ParseCategory(value string) (Category, error) {
	v := strings.TrimSpace(value)
	for _, c := range Categories() {
		if strings.EqualFold(v, string(c)) || strings.EqualFold(v, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}
