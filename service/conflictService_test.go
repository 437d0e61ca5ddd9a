package service

import (
	"testing"

	"github.com/mvdwal/festival-companion/entity"

	"github.com/stretchr/testify/assert"
)

func conflictTestSchedule() *entity.Schedule {
	return &entity.Schedule{
		Arena: entity.VenueProgram{
			"friday": entity.DayProgram{
				"MainStage": {
					{Artist: "X", Start: "20:00", End: "21:00"},
					{Artist: "Closer", Start: "23:00", End: "00:30"},
				},
				"Tent": {
					{Artist: "Z", Start: "12:00", End: "13:00"},
					{Artist: "Nightcap", Start: "00:00", End: "01:00"},
				},
			},
		},
		DistrictX: entity.VenueProgram{
			"wednesday": entity.DayProgram{
				"Warehouse": {
					{Artist: "Midweek", Start: "20:00", End: "21:00"},
				},
			},
			"friday": entity.DayProgram{
				"Tent": {
					{Artist: "Y", Start: "20:30", End: "21:30"},
				},
			},
		},
	}
}

func favorite(artist, day, stage, start, person string) *entity.FavoriteEntry {
	return &entity.FavoriteEntry{SetKey: entity.SetKey(artist, day, stage, start), Person: person}
}

func TestFindAllConflictsCrossVenue(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	entries := []*entity.FavoriteEntry{
		favorite("X", "friday", "MainStage", "20:00", "device-1"),
		favorite("Y", "friday", "Tent", "20:30", "device-1"),
	}

	conflicts := s.FindAllConflicts(schedule, entries)

	assert.Len(t, conflicts, 1)
	conflict := conflicts[0]
	assert.Equal(t, "friday", conflict.Day)
	assert.Equal(t, "X", conflict.Artist1)
	assert.Equal(t, "Y", conflict.Artist2)
	assert.Equal(t, "Arena", conflict.Venue1)
	assert.Equal(t, "District X", conflict.Venue2)
}

func TestFindAllConflictsSameVenueDisjointTimes(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	entries := []*entity.FavoriteEntry{
		favorite("X", "friday", "MainStage", "20:00", "device-1"),
		favorite("Z", "friday", "Tent", "12:00", "device-1"),
	}

	assert.Empty(t, s.FindAllConflicts(schedule, entries))
}

func TestFindAllConflictsSameVenueAcrossMidnight(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	entries := []*entity.FavoriteEntry{
		favorite("Closer", "friday", "MainStage", "23:00", "device-1"),
		favorite("Nightcap", "friday", "Tent", "00:00", "device-1"),
	}

	conflicts := s.FindAllConflicts(schedule, entries)

	// 23:00-00:30 and 00:00-01:00 overlap past midnight; reported once,
	// without venue labels for a same-venue pair.
	assert.Len(t, conflicts, 1)
	assert.Empty(t, conflicts[0].Venue1)
	assert.Empty(t, conflicts[0].Venue2)
}

func TestFindAllConflictsSameStageNeverCompared(t *testing.T) {
	s := NewConflictService()
	schedule := &entity.Schedule{
		Arena: entity.VenueProgram{
			"friday": entity.DayProgram{
				"MainStage": {
					// Bad data: overlapping performances on one stage.
					{Artist: "A", Start: "20:00", End: "21:00"},
					{Artist: "B", Start: "20:30", End: "21:30"},
				},
			},
		},
		DistrictX: entity.VenueProgram{},
	}

	entries := []*entity.FavoriteEntry{
		favorite("A", "friday", "MainStage", "20:00", "device-1"),
		favorite("B", "friday", "MainStage", "20:30", "device-1"),
	}

	assert.Empty(t, s.FindAllConflicts(schedule, entries))
}

func TestFindAllConflictsMergedAcrossPeople(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	// P1 favorited only by Alice, P2 only by Bob: favoriting is merged
	// across people, so it still conflicts.
	entries := []*entity.FavoriteEntry{
		favorite("Closer", "friday", "MainStage", "23:00", "Alice"),
		favorite("Nightcap", "friday", "Tent", "00:00", "Bob"),
	}

	assert.Len(t, s.FindAllConflicts(schedule, entries), 1)
}

func TestFindAllConflictsSkipsUndefinedExtent(t *testing.T) {
	s := NewConflictService()
	schedule := &entity.Schedule{
		Arena: entity.VenueProgram{
			"friday": entity.DayProgram{
				"MainStage": {
					{Artist: "NoEnd", Start: "20:00"},
				},
				"Tent": {
					{Artist: "Y", Start: "20:00", End: "21:00"},
				},
			},
		},
		DistrictX: entity.VenueProgram{},
	}

	entries := []*entity.FavoriteEntry{
		favorite("NoEnd", "friday", "MainStage", "20:00", "device-1"),
		favorite("Y", "friday", "Tent", "20:00", "device-1"),
	}

	assert.Empty(t, s.FindAllConflicts(schedule, entries))
}

func TestFindAllConflictsWednesdayHasNoCrossVenueCounterpart(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	entries := []*entity.FavoriteEntry{
		favorite("Midweek", "wednesday", "Warehouse", "20:00", "device-1"),
		favorite("X", "friday", "MainStage", "20:00", "device-1"),
	}

	assert.Empty(t, s.FindAllConflicts(schedule, entries))
}

func TestFindAllConflictsDeterministic(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	entries := []*entity.FavoriteEntry{
		favorite("X", "friday", "MainStage", "20:00", "device-1"),
		favorite("Y", "friday", "Tent", "20:30", "device-1"),
		favorite("Closer", "friday", "MainStage", "23:00", "device-1"),
		favorite("Nightcap", "friday", "Tent", "00:00", "device-1"),
	}

	first := s.FindAllConflicts(schedule, entries)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.FindAllConflicts(schedule, entries))
	}
}

func TestFindConflictsForPerformance(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	target := &entity.Performance{Artist: "X", Start: "20:00", End: "21:00"}

	entries := []*entity.FavoriteEntry{
		favorite("X", "friday", "MainStage", "20:00", "device-1"),
		favorite("Y", "friday", "Tent", "20:30", "Alice"),
	}

	details := s.FindConflictsForPerformance(schedule, entries, target, "MainStage", "friday", entity.VenueArena, "device-1")

	assert.Len(t, details, 1)
	assert.Equal(t, "Y", details[0].Artist)
	assert.Equal(t, "Tent", details[0].Stage)
	assert.Equal(t, "District X", details[0].Venue)
}

func TestFindConflictsForPerformanceRequiresOwnFavorite(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	target := &entity.Performance{Artist: "X", Start: "20:00", End: "21:00"}

	// Favorited by someone else, not by the viewing device.
	entries := []*entity.FavoriteEntry{
		favorite("X", "friday", "MainStage", "20:00", "Alice"),
		favorite("Y", "friday", "Tent", "20:30", "Alice"),
	}

	assert.Empty(t, s.FindConflictsForPerformance(schedule, entries, target, "MainStage", "friday", entity.VenueArena, "device-1"))
}

func TestFindConflictsForPerformanceRequiresExtent(t *testing.T) {
	s := NewConflictService()
	schedule := conflictTestSchedule()

	target := &entity.Performance{Artist: "X", Start: "20:00"}

	entries := []*entity.FavoriteEntry{
		favorite("X", "friday", "MainStage", "20:00", "device-1"),
	}

	assert.Empty(t, s.FindConflictsForPerformance(schedule, entries, target, "MainStage", "friday", entity.VenueArena, "device-1"))
	assert.Empty(t, s.FindConflictsForPerformance(schedule, entries, nil, "MainStage", "friday", entity.VenueArena, "device-1"))
}
