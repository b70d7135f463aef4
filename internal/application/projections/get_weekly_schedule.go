package projections

import (
	"context"
	"sort"

	"gymdesk/internal/domain/schedule"
)

// WeeklyScheduleStore defines the store interface needed by this projection.
type WeeklyScheduleStore interface {
	List(ctx context.Context) ([]schedule.Schedule, error)
}

// GetWeeklyScheduleDeps holds dependencies for the projection.
type GetWeeklyScheduleDeps struct {
	ScheduleStore WeeklyScheduleStore
	TrainerStore  ClassBoardTrainerStore
}

// WeeklySession is one recurring class in the weekly timetable.
type WeeklySession struct {
	ID            string  `json:"id"`
	ModuleName    string  `json:"module_name"`
	TrainerID     string  `json:"trainer_id,omitempty"`
	TrainerName   string  `json:"trainer_name,omitempty"`
	Room          string  `json:"room,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
}

// ScheduleDay groups the sessions of one weekday.
type ScheduleDay struct {
	Day      string          `json:"day"`
	Sessions []WeeklySession `json:"sessions"`
}

// QueryGetWeeklySchedule groups every recurring session by weekday.
// PRE: none
// POST: Returns seven days Monday first; each day's sessions are ordered by start time
func QueryGetWeeklySchedule(ctx context.Context, deps GetWeeklyScheduleDeps) ([]ScheduleDay, error) {
	all, err := deps.ScheduleStore.List(ctx)
	if err != nil {
		return nil, err
	}

	days := make([]ScheduleDay, len(schedule.ValidDays))
	for i, d := range schedule.ValidDays {
		days[i] = ScheduleDay{Day: d, Sessions: []WeeklySession{}}
	}

	names := make(map[string]string)
	for _, s := range all {
		idx := schedule.DayIndex(s.Day)
		if idx < 0 {
			continue
		}
		hours, _ := s.DurationHours()
		ws := WeeklySession{
			ID:            s.ID,
			ModuleName:    s.ModuleName,
			TrainerID:     s.TrainerID,
			Room:          s.Room,
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
			DurationHours: hours,
		}
		if s.TrainerID != "" && deps.TrainerStore != nil {
			name, ok := names[s.TrainerID]
			if !ok {
				if tr, err := deps.TrainerStore.GetByID(ctx, s.TrainerID); err == nil {
					name = tr.Name
				}
				names[s.TrainerID] = name
			}
			ws.TrainerName = name
		}
		days[idx].Sessions = append(days[idx].Sessions, ws)
	}

	for i := range days {
		sessions := days[i].Sessions
		sort.SliceStable(sessions, func(a, b int) bool {
			return sessions[a].StartTime < sessions[b].StartTime
		})
	}
	return days, nil
}
