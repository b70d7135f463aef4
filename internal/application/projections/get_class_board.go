package projections

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"gymdesk/internal/domain/classwindow"
	"gymdesk/internal/domain/closure"
	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/trainer"
)

// ClassBoardScheduleStore defines the store interface needed by this projection.
type ClassBoardScheduleStore interface {
	ListByDay(ctx context.Context, day string) ([]schedule.Schedule, error)
}

// ClassBoardClosureStore defines the store interface needed by this projection.
type ClassBoardClosureStore interface {
	List(ctx context.Context) ([]closure.Closure, error)
}

// ClassBoardTrainerStore defines the store interface needed by this projection.
type ClassBoardTrainerStore interface {
	GetByID(ctx context.Context, id string) (trainer.Trainer, error)
}

// GetClassBoardDeps holds dependencies for the projection.
// TrainerStore is optional.
type GetClassBoardDeps struct {
	ScheduleStore ClassBoardScheduleStore
	ClosureStore  ClassBoardClosureStore
	TrainerStore  ClassBoardTrainerStore
}

// BoardEntry is one of today's sessions with its live state.
type BoardEntry struct {
	ScheduleID  string `json:"schedule_id"`
	ModuleName  string `json:"module_name"`
	TrainerID   string `json:"trainer_id,omitempty"`
	TrainerName string `json:"trainer_name,omitempty"`
	Room        string `json:"room,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	classwindow.State
}

// ClassBoard is the evaluated view of today's classes at a single instant.
type ClassBoard struct {
	At        time.Time                 `json:"at"`
	Day       string                    `json:"day"`
	ClosedFor string                    `json:"closed_for,omitempty"`
	Entries   []BoardEntry              `json:"entries"`
	Counts    map[classwindow.Phase]int `json:"counts"`
}

// QueryGetClassBoard evaluates every session scheduled on now's weekday.
// PRE: now carries the gym's location
// POST: Entries are sorted by start time then module name; on a closure day Entries is empty
// INVARIANT: Each entry's state is exactly classwindow.Evaluate(session, now)
func QueryGetClassBoard(ctx context.Context, now time.Time, deps GetClassBoardDeps) (ClassBoard, error) {
	board := ClassBoard{
		At:      now,
		Day:     schedule.DayOf(now),
		Entries: []BoardEntry{},
		Counts:  make(map[classwindow.Phase]int),
	}

	if deps.ClosureStore != nil {
		closures, err := deps.ClosureStore.List(ctx)
		if err != nil {
			return ClassBoard{}, err
		}
		for _, c := range closures {
			if c.Contains(now) {
				board.ClosedFor = c.Reason
				return board, nil
			}
		}
	}

	sessions, err := deps.ScheduleStore.ListByDay(ctx, board.Day)
	if err != nil {
		return ClassBoard{}, err
	}

	trainerNames := make(map[string]string)
	for _, s := range sessions {
		if err := s.Validate(); err != nil {
			slog.Warn("board_session_skipped", "schedule_id", s.ID, "error", err.Error())
			continue
		}
		state := classwindow.Evaluate(s.Session(), now)
		entry := BoardEntry{
			ScheduleID: s.ID,
			ModuleName: s.ModuleName,
			TrainerID:  s.TrainerID,
			Room:       s.Room,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			State:      state,
		}
		if s.TrainerID != "" && deps.TrainerStore != nil {
			name, ok := trainerNames[s.TrainerID]
			if !ok {
				if tr, err := deps.TrainerStore.GetByID(ctx, s.TrainerID); err == nil {
					name = tr.Name
				}
				trainerNames[s.TrainerID] = name
			}
			entry.TrainerName = name
		}
		board.Entries = append(board.Entries, entry)
		board.Counts[state.Phase]++
	}

	sort.SliceStable(board.Entries, func(i, j int) bool {
		a, b := board.Entries[i], board.Entries[j]
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ModuleName < b.ModuleName
	})
	return board, nil
}
