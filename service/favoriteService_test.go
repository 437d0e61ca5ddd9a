package service

import (
	"testing"

	"github.com/mvdwal/festival-companion/entity"
	"github.com/mvdwal/festival-companion/repository"

	"github.com/stretchr/testify/assert"
)

func TestToggleWritesBack(t *testing.T) {
	s := NewFavoriteService(repository.NewMemoryFavoriteRepository())
	key := entity.SetKey("X", "friday", "MainStage", "20:00")

	entries, err := s.Toggle("device-1", key, "device-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	stored, err := s.FindManyByDeviceID("device-1")
	assert.NoError(t, err)
	assert.Equal(t, entries, stored)

	entries, err = s.Toggle("device-1", key, "device-1")
	assert.NoError(t, err)
	assert.Empty(t, entries)

	stored, err = s.FindManyByDeviceID("device-1")
	assert.NoError(t, err)
	assert.Empty(t, stored)
}

func TestToggleIsolatedPerDevice(t *testing.T) {
	s := NewFavoriteService(repository.NewMemoryFavoriteRepository())
	key := entity.SetKey("X", "friday", "MainStage", "20:00")

	_, err := s.Toggle("device-1", key, "device-1")
	assert.NoError(t, err)

	stored, err := s.FindManyByDeviceID("device-2")
	assert.NoError(t, err)
	assert.Empty(t, stored)
}

func TestImportShared(t *testing.T) {
	s := NewFavoriteService(repository.NewMemoryFavoriteRepository())

	keyX := entity.SetKey("X", "friday", "MainStage", "20:00")
	keyY := entity.SetKey("Y", "friday", "Tent", "20:30")

	_, err := s.Toggle("device-1", keyX, "device-1")
	assert.NoError(t, err)

	payload := &entity.SharePayload{Name: "Alice", Favorites: []string{keyX, keyY}}
	entries, imported, err := s.ImportShared("device-1", payload)
	assert.NoError(t, err)

	// keyX was already the device's own favorite, so it only gains Alice's
	// attribution; keyY gains both.
	assert.Equal(t, 3, imported)
	assert.True(t, entity.IsFavoritedBy(entries, keyX, "Alice"))
	assert.True(t, entity.IsFavoritedBy(entries, keyX, "device-1"))
	assert.True(t, entity.IsFavoritedBy(entries, keyY, "Alice"))
	assert.True(t, entity.IsFavoritedBy(entries, keyY, "device-1"))

	// Importing the same payload twice changes nothing.
	entries, imported, err = s.ImportShared("device-1", payload)
	assert.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Len(t, entries, 4)
}

func TestUpgradeLegacyService(t *testing.T) {
	s := NewFavoriteService(repository.NewMemoryFavoriteRepository())

	entries, err := s.UpgradeLegacy("device-1", []string{"Headliner", "Support"})
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	// Running the upgrade again is a no-op.
	entries, err = s.UpgradeLegacy("device-1", []string{"Headliner"})
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
