package catalog

import "fmt"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies in the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Resource is a single social-service listing. Values are never mutated
// after the catalog is built.
type Resource struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Location    Coordinate `json:"location"`
	Category    Category   `json:"category"`
	Description string     `json:"description"`
	Metadata    string     `json:"metadata,omitempty"`
	Address     string     `json:"address,omitempty"`
	Phone       string     `json:"phone,omitempty"`
}

// Entry is one row of a catalog manifest, before an ID is assigned.
type Entry struct {
	Name        string
	Latitude    float64
	Longitude   float64
	Category    Category
	Description string
	Metadata    string
	Address     string
	Phone       string
}

func (e Entry) validate() error {
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%s: unknown category %q", e.Name, e.Category)
	}
	loc := Coordinate{Latitude: e.Latitude, Longitude: e.Longitude}
	if !loc.Valid() {
		return fmt.Errorf("%s: coordinate %v,%v out of range", e.Name, e.Latitude, e.Longitude)
	}
	return nil
}
