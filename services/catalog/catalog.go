// Package catalog holds the immutable, compiled-in set of geo-tagged
// resources shown on the map screen.
package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Catalog is a read-only, ordered set of resources. It is safe for
// concurrent use because nothing mutates it after New returns.
type Catalog struct {
	resources []Resource
	byID      map[string]int
}

// New validates the manifest entries and assigns each one an ID.
// Order is preserved.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		resources: make([]Resource, 0, len(entries)),
		byID:      make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		r := Resource{
			ID:          uuid.NewString(),
			Name:        e.Name,
			Location:    Coordinate{Latitude: e.Latitude, Longitude: e.Longitude},
			Category:    e.Category,
			Description: e.Description,
			Metadata:    e.Metadata,
			Address:     e.Address,
			Phone:       e.Phone,
		}
		c.byID[r.ID] = len(c.resources)
		c.resources = append(c.resources, r)
	}
	return c, nil
}

// MustNew is New for compiled-in manifests; a bad manifest panics.
func MustNew(entries ...Entry) *Catalog {
	c, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the resources in manifest order. The slice is a copy.
func (c *Catalog) List() []Resource {
	return slices.Clone(c.resources)
}

// Get looks a resource up by ID.
func (c *Catalog) Get(id string) (Resource, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Resource{}, false
	}
	return c.resources[i], true
}

// Len returns the number of resources.
func (c *Catalog) Len() int {
	return len(c.resources)
}
