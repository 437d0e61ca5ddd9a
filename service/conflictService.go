package service

import (
	"strings"

	"github.com/mvdwal/festival-companion/entity"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ConflictService is the single implementation of overlap detection. All
// call sites (global alert, favorites badge, tooltip hover) go through it;
// it is pure over the schedule and favorites it is handed.
type ConflictService struct{}

func NewConflictService() *ConflictService {
	return &ConflictService{}
}

// timedPerformance is a favorited performance annotated with its location
// and precomputed minute extents.
type timedPerformance struct {
	performance *entity.Performance
	stage       string
	startMin    int
	endMin      int
}

func (p timedPerformance) overlaps(other timedPerformance) bool {
	return p.startMin < other.endMin && p.endMin > other.startMin
}

// FindAllConflicts computes every pair of favorited performances whose time
// ranges overlap: same venue across different stages per day, plus the full
// Arena x District X cross product on the days both venues operate. A
// performance counts as favorited when any person marked it; merged shared
// lineups are the point. Output order is deterministic for a given store.
func (s *ConflictService) FindAllConflicts(schedule *entity.Schedule, entries []*entity.FavoriteEntry) []*entity.Conflict {
	if schedule == nil {
		return nil
	}

	favorited := entity.FavoritedSetKeys(entries)

	var conflicts []*entity.Conflict

	for _, venue := range []string{entity.VenueArena, entity.VenueDistrictX} {
		program := schedule.Venue(venue)
		for _, day := range schedule.Days(venue) {
			list := collectFavorited(program[day], day, favorited)
			for i := 0; i < len(list); i++ {
				for j := i + 1; j < len(list); j++ {
					a, b := list[i], list[j]
					if a.stage == b.stage {
						// A stage cannot host two simultaneous performances.
						continue
					}
					if a.overlaps(b) {
						conflicts = append(conflicts, newConflict(day, a, b, "", ""))
					}
				}
			}
		}
	}

	for _, day := range entity.CommonDays {
		arenaList := collectFavorited(schedule.Arena[day], day, favorited)
		districtList := collectFavorited(schedule.DistrictX[day], day, favorited)
		for _, a := range arenaList {
			for _, b := range districtList {
				if a.overlaps(b) {
					conflicts = append(conflicts, newConflict(
						day, a, b,
						entity.VenueLabels[entity.VenueArena],
						entity.VenueLabels[entity.VenueDistrictX],
					))
				}
			}
		}
	}

	return conflicts
}

// FindConflictsForPerformance looks up everything clashing with one hover
// target: other stages of its own venue plus all stages of the other venue,
// on the same day. It short-circuits unless the target is favorited by the
// current person and has a defined extent.
func (s *ConflictService) FindConflictsForPerformance(
	schedule *entity.Schedule,
	entries []*entity.FavoriteEntry,
	performance *entity.Performance,
	stage, day, venue, currentPerson string,
) []*entity.ConflictDetail {
	if schedule == nil || !performance.HasTimes() {
		return nil
	}

	setKey := performance.SetKey(day, stage)
	if !entity.IsFavoritedBy(entries, setKey, currentPerson) {
		return nil
	}

	favorited := entity.FavoritedSetKeys(entries)
	target := timedPerformance{
		performance: performance,
		stage:       stage,
		startMin:    entity.ParseTimeToMinutes(performance.Start),
		endMin:      entity.ParseTimeToMinutes(performance.End),
	}

	var details []*entity.ConflictDetail
	seen := map[string]bool{}

	for _, v := range []string{entity.VenueArena, entity.VenueDistrictX} {
		program := schedule.Venue(v)
		for _, other := range collectFavorited(program[day], day, favorited) {
			if v == venue && other.stage == stage {
				continue
			}
			if !target.overlaps(other) {
				continue
			}

			label := entity.VenueLabels[v]
			dedupeKey := strings.Join([]string{
				other.performance.Artist, other.stage,
				other.performance.Start, other.performance.End, label,
			}, "|")
			if seen[dedupeKey] {
				continue
			}
			seen[dedupeKey] = true

			details = append(details, &entity.ConflictDetail{
				Artist: other.performance.Artist,
				Stage:  other.stage,
				Start:  other.performance.Start,
				End:    other.performance.End,
				Venue:  label,
			})
		}
	}

	return details
}

// collectFavorited flattens one day's favorited performances across stages.
// Stage keys are visited in sorted order to keep results reproducible, and
// performances without both start and end are skipped: an undefined extent
// cannot overlap anything.
func collectFavorited(dayProgram entity.DayProgram, day string, favorited map[string]bool) []timedPerformance {
	if len(dayProgram) == 0 {
		return nil
	}

	stages := maps.Keys(dayProgram)
	slices.Sort(stages)

	var list []timedPerformance
	for _, stage := range stages {
		for _, performance := range dayProgram[stage] {
			if !performance.HasTimes() {
				continue
			}
			if !favorited[performance.SetKey(day, stage)] {
				continue
			}
			list = append(list, timedPerformance{
				performance: performance,
				stage:       stage,
				startMin:    entity.ParseTimeToMinutes(performance.Start),
				endMin:      entity.ParseTimeToMinutes(performance.End),
			})
		}
	}

	return list
}

func newConflict(day string, a, b timedPerformance, venueA, venueB string) *entity.Conflict {
	return &entity.Conflict{
		Day:     day,
		Artist1: a.performance.Artist,
		Artist2: b.performance.Artist,
		Time1:   a.performance.TimeRange(),
		Time2:   b.performance.TimeRange(),
		Stage1:  a.stage,
		Stage2:  b.stage,
		Venue1:  venueA,
		Venue2:  venueB,
	}
}
