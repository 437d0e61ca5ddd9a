package entity

import "strings"

// CurrentPersonLabel is the display label substituted for the viewing
// device's own person identifier. It never appears in stored entries.
const CurrentPersonLabel = "You"

// SetKey is the canonical string identity of a performance for favoriting
// purposes. End time is excluded on purpose (see Performance.SetKey).
func SetKey(artist, day, stage, start string) string {
	return strings.Join([]string{artist, day, stage, start}, "|")
}

// FavoriteEntry marks that a person intends to attend the performance
// identified by SetKey. A device's favorites may contain entries for several
// people after share imports.
type FavoriteEntry struct {
	SetKey string `bson:"setKey" json:"setKey"`
	Person string `bson:"person" json:"person"`
}

// Toggle flips one (setKey, person) marking and returns the updated entries.
// Applying the same toggle twice returns to the original state, and entries
// belonging to other people are never touched.
func Toggle(entries []*FavoriteEntry, setKey, person string) []*FavoriteEntry {
	updated := make([]*FavoriteEntry, 0, len(entries)+1)
	removed := false
	for _, entry := range entries {
		if entry.SetKey == setKey && entry.Person == person {
			removed = true
			continue
		}
		updated = append(updated, entry)
	}

	if !removed {
		updated = append(updated, &FavoriteEntry{SetKey: setKey, Person: person})
	}

	return updated
}

// IsFavoritedBy reports whether a specific person favorited the performance.
func IsFavoritedBy(entries []*FavoriteEntry, setKey, person string) bool {
	for _, entry := range entries {
		if entry.SetKey == setKey && entry.Person == person {
			return true
		}
	}
	return false
}

// PeopleFor returns the distinct people going to a performance, with the
// current person's identifier rewritten to "You".
func PeopleFor(entries []*FavoriteEntry, setKey, currentPerson string) []string {
	seen := map[string]bool{}
	var people []string
	for _, entry := range entries {
		if entry.SetKey != setKey {
			continue
		}

		name := entry.Person
		if name == currentPerson {
			name = CurrentPersonLabel
		}

		if !seen[name] {
			seen[name] = true
			people = append(people, name)
		}
	}
	return people
}

// FavoritedSetKeys collects the set of performances favorited by anyone.
// Cross-person merged lineups are a feature: a shared favorite counts for
// conflict detection just like the device owner's own.
func FavoritedSetKeys(entries []*FavoriteEntry) map[string]bool {
	keys := make(map[string]bool, len(entries))
	for _, entry := range entries {
		keys[entry.SetKey] = true
	}
	return keys
}

// UpgradeLegacy converts a legacy flat artist-name list into FavoriteEntry
// form attributed to one person. Legacy names carry no day, stage or start,
// so their set keys never match a scheduled performance and they stay out of
// conflict detection until the user re-favorites.
func UpgradeLegacy(artists []string, person string) []*FavoriteEntry {
	entries := make([]*FavoriteEntry, 0, len(artists))
	for _, artist := range artists {
		if artist == "" {
			continue
		}
		if IsFavoritedBy(entries, artist, person) {
			continue
		}
		entries = append(entries, &FavoriteEntry{SetKey: artist, Person: person})
	}
	return entries
}
