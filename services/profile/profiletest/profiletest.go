// Package profiletest holds checks shared by every profile.Store backend.
package profiletest

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uplift/backend/services/profile"
)

// RandomProfile returns a valid profile filled with fake data.
func RandomProfile(f *gofakeit.Faker) profile.Profile {
	return profile.Fake(f)
}

// Exercise runs the round-trip checks every Store must pass.
func Exercise(t *testing.T, store profile.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("load missing returns zero profile", func(t *testing.T) {
		p, err := store.Load(ctx, "device-never-saved")
		require.NoError(t, err)
		assert.Equal(t, profile.Profile{}, p)
	})

	t.Run("round trip", func(t *testing.T) {
		want := profile.Profile{
			FirstName:     "Ada",
			LastName:      "Lovelace",
			PreferredName: "Ada",
			AgeRange:      profile.Age19To30,
			Needs:         profile.Needs{FoodBank: true, Scholarship: true},
		}
		require.NoError(t, store.Save(ctx, "device-1", want))

		got, err := store.Load(ctx, "device-1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save overwrites every field", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "device-2", profile.Profile{
			FirstName: "Grace",
			AgeRange:  profile.Age65Plus,
			Needs:     profile.Needs{EmergencyShelter: true, MentorMatch: true},
		}))
		require.NoError(t, store.Save(ctx, "device-2", profile.Profile{FirstName: "Grace"}))

		got, err := store.Load(ctx, "device-2")
		require.NoError(t, err)
		assert.Equal(t, profile.Profile{FirstName: "Grace"}, got)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "device-a", profile.Profile{FirstName: "A"}))
		require.NoError(t, store.Save(ctx, "device-b", profile.Profile{FirstName: "B"}))

		a, err := store.Load(ctx, "device-a")
		require.NoError(t, err)
		assert.Equal(t, "A", a.FirstName)
	})

	t.Run("random profiles round trip", func(t *testing.T) {
		f := gofakeit.New(42)
		for i := 0; i < 25; i++ {
			want := RandomProfile(f)
			owner := f.UUID()
			require.NoError(t, store.Save(ctx, owner, want))

			got, err := store.Load(ctx, owner)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("invalid profile is rejected", func(t *testing.T) {
		err := store.Save(ctx, "device-3", profile.Profile{AgeRange: "200+"})
		require.ErrorIs(t, err, profile.ErrInvalidProfile)
		assert.NotErrorIs(t, err, profile.ErrStorage)
	})

	t.Run("owner is required", func(t *testing.T) {
		_, err := store.Load(ctx, "")
		assert.ErrorIs(t, err, profile.ErrOwnerRequired)
		assert.ErrorIs(t, store.Save(ctx, "", profile.Profile{}), profile.ErrOwnerRequired)
	})
}
