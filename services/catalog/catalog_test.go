package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ManifestIsWellFormed(t *testing.T) {
	c := Default()

	require.Equal(t, len(DefaultEntries), c.Len())
	seen := make(map[string]bool)
	for i, r := range c.List() {
		assert.NotEmpty(t, r.ID)
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		assert.Equal(t, DefaultEntries[i].Name, r.Name)
		assert.True(t, r.Location.Valid())
		assert.True(t, r.Category.Valid())
	}
}

func TestDefault_IsStable(t *testing.T) {
	assert.Equal(t, Default().List(), Default().List())
}

func TestList_ReturnsCopy(t *testing.T) {
	c := MustNew(Entry{Name: "A", Category: FoodBank}, Entry{Name: "B", Category: HousingShelter})

	got := c.List()
	got[0].Name = "mutated"

	assert.Equal(t, "A", c.List()[0].Name)
}

func TestGet(t *testing.T) {
	c := MustNew(Entry{Name: "A", Category: FoodBank, Latitude: 1, Longitude: 2})
	id := c.List()[0].ID

	r, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "A", r.Name)
	assert.Equal(t, Coordinate{Latitude: 1, Longitude: 2}, r.Location)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestNew_RejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{"empty name", Entry{Category: FoodBank}, "name is required"},
		{"unknown category", Entry{Name: "X", Category: "library"}, "unknown category"},
		{"latitude", Entry{Name: "X", Category: FoodBank, Latitude: 91}, "out of range"},
		{"longitude", Entry{Name: "X", Category: FoodBank, Longitude: -181}, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entry)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Entry{}) })
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("food_bank")
	require.NoError(t, err)
	assert.Equal(t, FoodBank, c)

	c, err = ParseCategory(" Housing Shelter ")
	require.NoError(t, err)
	assert.Equal(t, HousingShelter, c)

	_, err = ParseCategory("library")
	assert.Error(t, err)
}

func TestCategoryGroups(t *testing.T) {
	for _, c := range Categories() {
		assert.NotEqual(t, c.IsFood(), c.IsHousing(), "category %s must belong to exactly one toggle", c)
		assert.NotEqual(t, string(c), c.Label())
	}
}
