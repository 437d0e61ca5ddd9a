package repository

import (
	"sync"

	"github.com/mvdwal/festival-companion/entity"

	"golang.org/x/exp/slices"
)

// MemoryFavoriteRepository backs favorites when the capability probe finds
// storage unavailable. Favoriting and conflict detection keep working for
// the session; the degraded condition is surfaced on the status endpoint.
type MemoryFavoriteRepository struct {
	mutex    sync.RWMutex
	byDevice map[string][]*entity.FavoriteEntry
}

func NewMemoryFavoriteRepository() *MemoryFavoriteRepository {
	return &MemoryFavoriteRepository{
		byDevice: map[string][]*entity.FavoriteEntry{},
	}
}

func (r *MemoryFavoriteRepository) FindManyByDeviceID(deviceID string) ([]*entity.FavoriteEntry, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return slices.Clone(r.byDevice[deviceID]), nil
}

func (r *MemoryFavoriteRepository) ReplaceManyByDeviceID(deviceID string, entries []*entity.FavoriteEntry) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(entries) == 0 {
		delete(r.byDevice, deviceID)
		return nil
	}

	r.byDevice[deviceID] = slices.Clone(entries)
	return nil
}
