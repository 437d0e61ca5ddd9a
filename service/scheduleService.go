package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mvdwal/festival-companion/entity"
	"github.com/mvdwal/festival-companion/repository"
)

// legacyArenaDays are the day keys a legacy flat payload files under the
// Arena; legacyDistrictXDays go to District X. The legacy shape predates the
// second venue, so District X also gets empty weekend placeholders.
var (
	legacyArenaDays     = []string{"friday", "saturday", "sunday"}
	legacyDistrictXDays = []string{"wednesday", "thursday"}
)

type ScheduleService struct {
	scheduleRepository *repository.ScheduleRepository

	schedule  *entity.Schedule
	fetchedAt time.Time
}

func NewScheduleService(scheduleRepository *repository.ScheduleRepository) *ScheduleService {
	return &ScheduleService{
		scheduleRepository: scheduleRepository,
	}
}

// Load fetches and normalizes the schedule fixture. It runs once at startup;
// the resulting store is read-only for the life of the process.
func (s *ScheduleService) Load(ctx context.Context) error {
	raw, err := s.scheduleRepository.Fetch(ctx)
	if err != nil {
		return err
	}

	schedule, err := s.Parse(raw)
	if err != nil {
		return err
	}

	s.schedule = schedule
	s.fetchedAt = time.Now()
	return nil
}

// Parse accepts either the canonical {arena, districtX} shape or the legacy
// flat shape keyed directly by day name, and normalizes to the canonical one.
func (s *ScheduleService) Parse(raw []byte) (*entity.Schedule, error) {
	var canonical struct {
		Arena     entity.VenueProgram `json:"arena"`
		DistrictX entity.VenueProgram `json:"districtX"`
	}
	if err := json.Unmarshal(raw, &canonical); err == nil {
		if canonical.Arena != nil || canonical.DistrictX != nil {
			schedule := &entity.Schedule{
				Arena:     canonical.Arena,
				DistrictX: canonical.DistrictX,
			}
			if schedule.Arena == nil {
				schedule.Arena = entity.VenueProgram{}
			}
			if schedule.DistrictX == nil {
				schedule.DistrictX = entity.VenueProgram{}
			}
			return schedule, nil
		}
	}

	var flat map[string]entity.DayProgram
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, &entity.DataFormatError{Reason: "payload is neither the canonical venue shape nor a flat day map"}
	}

	schedule := &entity.Schedule{
		Arena:     entity.VenueProgram{},
		DistrictX: entity.VenueProgram{},
	}

	found := false
	for _, day := range legacyArenaDays {
		if program, ok := flat[day]; ok {
			schedule.Arena[day] = program
			found = true
		}
	}
	for _, day := range legacyDistrictXDays {
		if program, ok := flat[day]; ok {
			schedule.DistrictX[day] = program
			found = true
		}
	}
	if !found {
		return nil, &entity.DataFormatError{Reason: "flat payload has no known day keys"}
	}

	// District X has no weekend data yet in legacy payloads; keep the days
	// present so absence reads as "no data" rather than "no venue".
	for _, day := range legacyArenaDays {
		if _, ok := schedule.DistrictX[day]; !ok {
			schedule.DistrictX[day] = entity.DayProgram{}
		}
	}

	return schedule, nil
}

// Schedule returns the loaded store, nil before Load succeeds.
func (s *ScheduleService) Schedule() *entity.Schedule {
	return s.schedule
}

func (s *ScheduleService) FetchedAt() time.Time {
	return s.fetchedAt
}

func (s *ScheduleService) Source() string {
	return s.scheduleRepository.Source()
}

func (s *ScheduleService) StagesFor(venue, day string) []string {
	return s.schedule.StagesFor(venue, day)
}

func (s *ScheduleService) PerformancesFor(venue, day, stage string) []*entity.Performance {
	return s.schedule.PerformancesFor(venue, day, stage)
}

func (s *ScheduleService) AllStageNames(venue string) []string {
	return s.schedule.AllStageNames(venue)
}
