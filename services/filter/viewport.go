package filter

import (
	"fmt"
	"math"

	"uplift/backend/services/catalog"
)

// BoundingBox is a latitude/longitude rectangle. When West > East the box
// crosses the antimeridian.
type BoundingBox struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Validate checks the box edges are finite, in range, and South <= North.
func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.South, b.West, b.North, b.East} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("viewport edges must be finite numbers")
		}
	}
	if b.South < -90 || b.North > 90 || b.South > b.North {
		return fmt.Errorf("invalid latitude range [%v, %v]", b.South, b.North)
	}
	if b.West < -180 || b.West > 180 || b.East < -180 || b.East > 180 {
		return fmt.Errorf("invalid longitude range [%v, %v]", b.West, b.East)
	}
	return nil
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p catalog.Coordinate) bool {
	if p.Latitude < b.South || p.Latitude > b.North {
		return false
	}
	if b.West <= b.East {
		return p.Longitude >= b.West && p.Longitude <= b.East
	}
	return p.Longitude >= b.West || p.Longitude <= b.East
}

// Region is a map camera region: a centre and a span in degrees.
type Region struct {
	Center   catalog.Coordinate `json:"center"`
	LatDelta float64            `json:"lat_delta"`
	LonDelta float64            `json:"lon_delta"`
}

// DefaultRegion is the initial camera position, centred on San Francisco.
var DefaultRegion = Region{
	Center:   catalog.Coordinate{Latitude: 37.7749, Longitude: -122.4194},
	LatDelta: 0.3,
	LonDelta: 0.3,
}

// Box converts the region to a bounding box. Latitude is clamped to the
// poles; longitude wraps across the antimeridian. A span of 360 degrees or
// more covers every longitude.
func (r Region) Box() BoundingBox {
	halfLat := math.Abs(r.LatDelta) / 2
	halfLon := math.Abs(r.LonDelta) / 2
	box := BoundingBox{
		South: math.Max(-90, r.Center.Latitude-halfLat),
		North: math.Min(90, r.Center.Latitude+halfLat),
	}
	if halfLon >= 180 {
		box.West, box.East = -180, 180
		return box
	}
	box.West = wrapLongitude(r.Center.Longitude - halfLon)
	box.East = wrapLongitude(r.Center.Longitude + halfLon)
	return box
}

func wrapLongitude(lon float64) float64 {
	for lon < -180 {
		lon += 360
	}
	for lon > 180 {
		lon -= 360
	}
	return lon
}
