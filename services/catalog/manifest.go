package catalog

import "sync"

// DefaultEntries is the compiled-in map manifest.
var DefaultEntries = []Entry{
	// Food banks
	{
		Name:        "SF-Marin Food Bank",
		Latitude:    37.773972,
		Longitude:   -122.431297,
		Category:    FoodBank,
		Description: "Provides groceries and meals to individuals and families in need.",
		Address:     "900 Pennsylvania Ave, San Francisco, CA",
		Phone:       "(415) 282-1900",
	},
	{
		Name:        "Alameda County Community Food Bank",
		Latitude:    37.7833,
		Longitude:   -122.2818,
		Category:    FoodBank,
		Description: "Distributes food to local families and community members.",
		Address:     "7900 Edgewater Dr, Oakland, CA",
		Phone:       "(510) 635-3663",
	},
	{
		Name:        "Los Angeles Regional Food Bank",
		Latitude:    34.0209,
		Longitude:   -118.4112,
		Category:    FoodBank,
		Description: "Offers free food and groceries for low-income families.",
		Address:     "1734 E 41st St, Los Angeles, CA",
		Phone:       "(323) 234-3030",
	},

	// Housing shelters
	{
		Name:        "Hope Haven Shelter",
		Latitude:    37.7749,
		Longitude:   -122.4194,
		Category:    HousingShelter,
		Description: "Emergency housing for individuals and families facing homelessness.",
		Metadata:    "Capacity: 50 beds",
		Address:     "123 Main St, San Francisco, CA",
		Phone:       "(415) 555-1234",
	},
	{
		Name:        "Bright Futures Transitional Housing",
		Latitude:    34.0522,
		Longitude:   -118.2437,
		Category:    HousingShelter,
		Description: "Supports individuals transitioning from homelessness to permanent housing.",
		Metadata:    "Capacity: 30 units",
		Address:     "456 Hope Rd, Los Angeles, CA",
		Phone:       "(323) 555-5678",
	},
	{
		Name:        "Safe Haven Women's Shelter",
		Latitude:    37.3382,
		Longitude:   -121.8863,
		Category:    HousingShelter,
		Description: "A safe space for women and children escaping domestic violence.",
		Metadata:    "Capacity: 25 beds",
		Address:     "789 Safe St, San Jose, CA",
		Phone:       "(408) 555-9101",
	},
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from DefaultEntries. It is built once
// per process so resource IDs stay stable.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = MustNew(DefaultEntries...)
	})
	return defaultCatalog
}
