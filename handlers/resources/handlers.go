package resources

import (
	"encoding/json"
	"fmt"
	"net/http"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"uplift/backend/services/catalog"
	"uplift/backend/services/filter"
)

type CategoryResponse struct {
	ID    catalog.Category `json:"id"`
	Label string           `json:"label"`
	Group string           `json:"group"`
}

type MapConfigResponse struct {
	Region        filter.Region      `json:"region"`
	Viewport      filter.BoundingBox `json:"viewport"`
	Toggles       filter.Toggles     `json:"toggles"`
	ResourceCount int                `json:"resource_count"`
	Categories    []catalog.Category `json:"categories"`
}

type ListResponse struct {
	Categories []catalog.Category  `json:"categories"`
	Viewport   *filter.BoundingBox `json:"viewport,omitempty"`
	Resources  []catalog.Resource  `json:"resources"`
}

// GetCategoriesHandler lists every resource category.
// Used by: /api/categories
func GetCategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var out []CategoryResponse
		for _, c := range catalog.Categories() {
			group := "food"
			if c.IsHousing() {
				group = "housing"
			}
			out = append(out, CategoryResponse{ID: c, Label: c.Label(), Group: group})
		}
		json.NewEncoder(w).Encode(out)
	}
}

// GetMapConfigHandler returns the initial camera region and toggle state
// for the map screen.
// Used by: /api/map
func GetMapConfigHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(MapConfigResponse{
			Region:        filter.DefaultRegion,
			Viewport:      filter.DefaultRegion.Box(),
			Toggles:       filter.DefaultToggles,
			ResourceCount: cat.Len(),
			Categories:    filter.DefaultToggles.Categories().Sorted(),
		})
	}
}

// GetResourcesHandler returns the resources matching the requested view.
// Categories come from repeated "category" params or, when none are given,
// from the "housing" and "food" toggles (both default on). A viewport is
// applied when all of south, west, north and east are set, or when a camera
// region is given as lat, lon, lat_delta and lon_delta.
// Used by: /api/resources
func GetResourcesHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		view, err := ParseView(r.URL.Query())
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		json.NewEncoder(w).Encode(ListResponse{
			Categories: view.Categories.Sorted(),
			Viewport:   view.Viewport,
			Resources:  filter.Apply(cat.List(), view),
		})
	}
}

// GetResourceHandler returns one resource for the detail sheet.
// Used by: /api/resources/{id}
func GetResourceHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		res, ok := cat.Get(mux.Vars(r)["id"])
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Resource not found"})
			return
		}
		json.NewEncoder(w).Encode(res)
	}
}

// ParseView reads a filter.View from query parameters.
func ParseView(q url.Values) (filter.View, error) {
	var view filter.View

	if values, ok := q["category"]; ok {
		view.Categories = filter.NewCategorySet()
		for _, v := range values {
			c, err := catalog.ParseCategory(v)
			if err != nil {
				return filter.View{}, err
			}
			view.Categories[c] = struct{}{}
		}
	} else {
		toggles := filter.DefaultToggles
		var err error
		if toggles.Housing, err = parseToggle(q, "housing", toggles.Housing); err != nil {
			return filter.View{}, err
		}
		if toggles.Food, err = parseToggle(q, "food", toggles.Food); err != nil {
			return filter.View{}, err
		}
		view.Categories = toggles.Categories()
	}

	box, err := parseViewport(q)
	if err != nil {
		return filter.View{}, err
	}
	view.Viewport = box
	return view, nil
}

func parseToggle(q url.Values, name string, def bool) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", name)
	}
	return b, nil
}

var (
	boxParams    = []string{"south", "west", "north", "east"}
	regionParams = []string{"lat", "lon", "lat_delta", "lon_delta"}
)

// parseFloats reads every name in names as a float. It returns nil when none
// of them is set and an error when only some are.
func parseFloats(q url.Values, names []string) ([]float64, error) {
	var present int
	for _, n := range names {
		if q.Get(n) != "" {
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present != len(names) {
		return nil, fmt.Errorf("%s must be set together", strings.Join(names, ", "))
	}

	out := make([]float64, len(names))
	for i, n := range names {
		f, err := strconv.ParseFloat(q.Get(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%s must be a finite number", n)
		}
		out[i] = f
	}
	return out, nil
}

// parseViewport accepts either an explicit box (south, west, north, east)
// or a camera region (lat, lon, lat_delta, lon_delta), not both.
func parseViewport(q url.Values) (*filter.BoundingBox, error) {
	edges, err := parseFloats(q, boxParams)
	if err != nil {
		return nil, err
	}
	region, err := parseFloats(q, regionParams)
	if err != nil {
		return nil, err
	}

	var box filter.BoundingBox
	switch {
	case edges != nil && region != nil:
		return nil, fmt.Errorf("use either a bounding box or a region, not both")
	case edges != nil:
		box = filter.BoundingBox{South: edges[0], West: edges[1], North: edges[2], East: edges[3]}
	case region != nil:
		r := filter.Region{
			Center:   catalog.Coordinate{Latitude: region[0], Longitude: region[1]},
			LatDelta: region[2],
			LonDelta: region[3],
		}
		if !r.Center.Valid() {
			return nil, fmt.Errorf("region center is out of range")
		}
		box = r.Box()
	default:
		return nil, nil
	}

	if err := box.Validate(); err != nil {
		return nil, err
	}
	return &box, nil
}
