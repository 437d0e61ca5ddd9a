package entity

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	VenueArena     = "arena"
	VenueDistrictX = "districtX"
)

// VenueLabels maps venue keys to the labels shown to users.
var VenueLabels = map[string]string{
	VenueArena:     "Arena",
	VenueDistrictX: "District X",
}

// CommonDays is the fixed set of days both venues operate. District X's
// wednesday/thursday programming has no Arena counterpart and is excluded
// from cross-venue comparison by definition, not by data absence.
var CommonDays = []string{"friday", "saturday", "sunday"}

// DayOrder is the festival-chronological order of all known day keys.
var DayOrder = []string{"wednesday", "thursday", "friday", "saturday", "sunday"}

// DayProgram maps stage name to that stage's performances for one day.
type DayProgram map[string][]*Performance

// VenueProgram maps day name to the day's program for one venue.
type VenueProgram map[string]DayProgram

// Schedule is the normalized performance data for the whole festival,
// created once per load and read-only thereafter.
type Schedule struct {
	Arena     VenueProgram `bson:"arena" json:"arena"`
	DistrictX VenueProgram `bson:"districtX" json:"districtX"`
}

func (s *Schedule) Venue(name string) VenueProgram {
	if s == nil {
		return nil
	}
	switch name {
	case VenueArena:
		return s.Arena
	case VenueDistrictX:
		return s.DistrictX
	}
	return nil
}

// Days returns the venue's day keys in festival order; day keys outside the
// known set follow, sorted, so traversal stays deterministic.
func (s *Schedule) Days(venue string) []string {
	program := s.Venue(venue)
	if len(program) == 0 {
		return nil
	}

	var days []string
	for _, day := range DayOrder {
		if _, ok := program[day]; ok {
			days = append(days, day)
		}
	}

	var extra []string
	for day := range program {
		if !slices.Contains(DayOrder, day) {
			extra = append(extra, day)
		}
	}
	slices.Sort(extra)

	return append(days, extra...)
}

// StagesFor returns the sorted stage names for one venue and day. Absent
// combinations are a normal state and yield an empty result.
func (s *Schedule) StagesFor(venue, day string) []string {
	program := s.Venue(venue)
	if program == nil {
		return nil
	}

	stages := maps.Keys(program[day])
	slices.Sort(stages)
	return stages
}

// PerformancesFor returns the performances for one venue, day and stage, or
// nothing if the combination is absent.
func (s *Schedule) PerformancesFor(venue, day, stage string) []*Performance {
	program := s.Venue(venue)
	if program == nil {
		return nil
	}
	return program[day][stage]
}

// AllStageNames returns the de-duplicated stage names across all of a
// venue's days, sorted.
func (s *Schedule) AllStageNames(venue string) []string {
	program := s.Venue(venue)
	if program == nil {
		return nil
	}

	seen := map[string]bool{}
	var stages []string
	for _, dayProgram := range program {
		for stage := range dayProgram {
			if !seen[stage] {
				seen[stage] = true
				stages = append(stages, stage)
			}
		}
	}
	slices.Sort(stages)
	return stages
}

// SortPerformances returns a chronological copy of a stage's performances.
// Source data is usually chronological already, but consumers that render
// timetables must not rely on that.
func SortPerformances(performances []*Performance) []*Performance {
	sorted := slices.Clone(performances)
	slices.SortStableFunc(sorted, func(a, b *Performance) int {
		return ParseTimeToMinutes(a.Start) - ParseTimeToMinutes(b.Start)
	})
	return sorted
}

// DataFormatError means the schedule payload was present but structurally
// invalid in both the canonical and the legacy shape. It is terminal for
// that load.
type DataFormatError struct {
	Reason string
}

func (e *DataFormatError) Error() string {
	return "schedule data format: " + e.Reason
}
