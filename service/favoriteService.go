package service

import (
	"github.com/mvdwal/festival-companion/entity"
)

// FavoriteStore is the persistence boundary for a device's favorites set.
// The mongo repository implements it normally; an in-memory one takes over
// when the startup capability probe finds storage unavailable.
type FavoriteStore interface {
	FindManyByDeviceID(deviceID string) ([]*entity.FavoriteEntry, error)
	ReplaceManyByDeviceID(deviceID string, entries []*entity.FavoriteEntry) error
}

type FavoriteService struct {
	favoriteStore FavoriteStore
}

func NewFavoriteService(favoriteStore FavoriteStore) *FavoriteService {
	return &FavoriteService{
		favoriteStore: favoriteStore,
	}
}

func (s *FavoriteService) FindManyByDeviceID(deviceID string) ([]*entity.FavoriteEntry, error) {
	return s.favoriteStore.FindManyByDeviceID(deviceID)
}

// Toggle flips one (setKey, person) marking and writes the updated set back.
func (s *FavoriteService) Toggle(deviceID, setKey, person string) ([]*entity.FavoriteEntry, error) {
	entries, err := s.favoriteStore.FindManyByDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	entries = entity.Toggle(entries, setKey, person)

	if err := s.favoriteStore.ReplaceManyByDeviceID(deviceID, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *FavoriteService) PeopleFor(deviceID, setKey string) ([]string, error) {
	entries, err := s.favoriteStore.FindManyByDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	return entity.PeopleFor(entries, setKey, deviceID), nil
}

// ImportShared merges a decoded share payload into a device's favorites.
// Entries keep the sender's display name, and a second copy lands under the
// importing device's own identity, so both lineups surface in conflict
// detection and "who's going" displays afterwards. Returns the updated set
// and how many entries were actually new.
func (s *FavoriteService) ImportShared(deviceID string, payload *entity.SharePayload) ([]*entity.FavoriteEntry, int, error) {
	entries, err := s.favoriteStore.FindManyByDeviceID(deviceID)
	if err != nil {
		return nil, 0, err
	}

	imported := 0
	for _, setKey := range payload.Favorites {
		if setKey == "" {
			continue
		}
		for _, person := range []string{payload.Name, deviceID} {
			if entity.IsFavoritedBy(entries, setKey, person) {
				continue
			}
			entries = append(entries, &entity.FavoriteEntry{SetKey: setKey, Person: person})
			imported++
		}
	}

	if imported > 0 {
		if err := s.favoriteStore.ReplaceManyByDeviceID(deviceID, entries); err != nil {
			return nil, 0, err
		}
	}

	return entries, imported, nil
}

// UpgradeLegacy merges a legacy flat artist-name list into a device's
// favorites under its own identity. This is the single boundary where the
// old representation is normalized; no core logic ever branches on shape.
func (s *FavoriteService) UpgradeLegacy(deviceID string, artists []string) ([]*entity.FavoriteEntry, error) {
	entries, err := s.favoriteStore.FindManyByDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	changed := false
	for _, upgraded := range entity.UpgradeLegacy(artists, deviceID) {
		if entity.IsFavoritedBy(entries, upgraded.SetKey, upgraded.Person) {
			continue
		}
		entries = append(entries, upgraded)
		changed = true
	}

	if changed {
		if err := s.favoriteStore.ReplaceManyByDeviceID(deviceID, entries); err != nil {
			return nil, err
		}
	}

	return entries, nil
}
