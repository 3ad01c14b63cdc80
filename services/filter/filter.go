// Package filter selects which catalog resources a screen displays. Every
// function is pure; the caller owns the UI state passed in.
package filter

import (
	"sort"

	"uplift/backend/services/catalog"
)

// CategorySet is the set of enabled categories.
type CategorySet map[catalog.Category]struct{}

// NewCategorySet builds a set from the given categories.
func NewCategorySet(categories ...catalog.Category) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is enabled.
func (s CategorySet) Has(c catalog.Category) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in catalog.Categories order.
func (s CategorySet) Sorted() []catalog.Category {
	out := make([]catalog.Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	order := make(map[catalog.Category]int)
	for i, c := range catalog.Categories() {
		order[c] = i
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}

// Select returns every resource whose category is enabled, in input order.
// An empty set selects nothing.
func Select(resources []catalog.Resource, enabled CategorySet) []catalog.Resource {
	out := make([]catalog.Resource, 0, len(resources))
	if len(enabled) == 0 {
		return out
	}
	for _, r := range resources {
		if enabled.Has(r.Category) {
			out = append(out, r)
		}
	}
	return out
}

// Within returns every resource located inside box, in input order.
func Within(resources []catalog.Resource, box BoundingBox) []catalog.Resource {
	out := make([]catalog.Resource, 0, len(resources))
	for _, r := range resources {
		if box.Contains(r.Location) {
			out = append(out, r)
		}
	}
	return out
}

// View is the map screen state: which categories are toggled on and,
// optionally, the visible region.
type View struct {
	Categories CategorySet
	Viewport   *BoundingBox
}

// Apply selects by category and then, when a viewport is set, by location.
func Apply(resources []catalog.Resource, view View) []catalog.Resource {
	out := Select(resources, view.Categories)
	if view.Viewport != nil {
		out = Within(out, *view.Viewport)
	}
	return out
}

// Toggles mirrors the two switches under the map.
type Toggles struct {
	Housing bool `json:"housing"`
	Food    bool `json:"food"`
}

// DefaultToggles has both switches on.
var DefaultToggles = Toggles{Housing: true, Food: true}

// Categories expands the toggles into the categories they control.
func (t Toggles) Categories() CategorySet {
	s := NewCategorySet()
	for _, c := range catalog.Categories() {
		if (t.Housing && c.IsHousing()) || (t.Food && c.IsFood()) {
			s[c] = struct{}{}
		}
	}
	return s
}
