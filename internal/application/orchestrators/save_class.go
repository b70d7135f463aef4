package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gymdesk/internal/domain/closure"
	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/trainer"
)

// ScheduleStoreForOrchestrator defines the store interface needed by SaveClass.
type ScheduleStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (schedule.Schedule, error)
	Save(ctx context.Context, s schedule.Schedule) error
}

// TrainerLookup resolves trainer IDs referenced by classes.
type TrainerLookup interface {
	GetByID(ctx context.Context, id string) (trainer.Trainer, error)
}

// ErrUnknownTrainer is returned when a class references a trainer that does not exist.
var ErrUnknownTrainer = errors.New("trainer does not exist")

// SaveClassInput carries input for creating or replacing a recurring class.
// An empty ID creates a new class.
type SaveClassInput struct {
	ID         string
	ModuleName string
	TrainerID  string
	Day        string
	StartTime  string
	EndTime    string
	Room       string
	AdminID    string
}

// SaveClassDeps holds dependencies for SaveClass.
type SaveClassDeps struct {
	ScheduleStore ScheduleStoreForOrchestrator
	TrainerStore  TrainerLookup
	GenerateID    func() string
}

// ExecuteSaveClass validates and stores a recurring class session.
// PRE: For updates, ID exists
// POST: The class is stored with a lower-case day and trimmed fields
// INVARIANT: Stored classes always satisfy schedule.Validate, so the board never sees malformed times
func ExecuteSaveClass(ctx context.Context, input SaveClassInput, deps SaveClassDeps) (schedule.Schedule, error) {
	s := schedule.Schedule{
		ID:         input.ID,
		ModuleName: strings.TrimSpace(input.ModuleName),
		TrainerID:  strings.TrimSpace(input.TrainerID),
		Day:        strings.ToLower(strings.TrimSpace(input.Day)),
		StartTime:  strings.TrimSpace(input.StartTime),
		EndTime:    strings.TrimSpace(input.EndTime),
		Room:       strings.TrimSpace(input.Room),
	}
	if err := s.Validate(); err != nil {
		return schedule.Schedule{}, err
	}
	if s.TrainerID != "" {
		if _, err := deps.TrainerStore.GetByID(ctx, s.TrainerID); err != nil {
			return schedule.Schedule{}, ErrUnknownTrainer
		}
	}

	event := "class_updated"
	if s.ID == "" {
		s.ID = deps.GenerateID()
		event = "class_created"
	} else if _, err := deps.ScheduleStore.GetByID(ctx, s.ID); err != nil {
		return schedule.Schedule{}, err
	}

	if err := deps.ScheduleStore.Save(ctx, s); err != nil {
		return schedule.Schedule{}, err
	}
	slog.Info("admin_event", "event", event, "schedule_id", s.ID, "admin_id", input.AdminID)
	return s, nil
}

// ClosureStoreForOrchestrator defines the store interface needed by AddClosure.
type ClosureStoreForOrchestrator interface {
	Save(ctx context.Context, c closure.Closure) error
}

// AddClosureInput carries input for the add closure orchestrator.
// Dates use closure.DateLayout; an empty EndDate means a single day.
type AddClosureInput struct {
	Reason    string
	StartDate string
	EndDate   string
	AdminID   string
}

// AddClosureDeps holds dependencies for AddClosure.
type AddClosureDeps struct {
	ClosureStore ClosureStoreForOrchestrator
	GenerateID   func() string
}

// ErrInvalidDate is returned when a closure date is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("dates must be in YYYY-MM-DD format")

// ExecuteAddClosure records a date range during which the gym runs no classes.
// PRE: StartDate is YYYY-MM-DD
// POST: Closure is saved; the class board is empty on every day in the range
func ExecuteAddClosure(ctx context.Context, input AddClosureInput, deps AddClosureDeps) (closure.Closure, error) {
	start, err := time.Parse(closure.DateLayout, strings.TrimSpace(input.StartDate))
	if err != nil {
		return closure.Closure{}, ErrInvalidDate
	}
	end := start
	if strings.TrimSpace(input.EndDate) != "" {
		if end, err = time.Parse(closure.DateLayout, strings.TrimSpace(input.EndDate)); err != nil {
			return closure.Closure{}, ErrInvalidDate
		}
	}
	c := closure.Closure{
		ID:        deps.GenerateID(),
		Reason:    strings.TrimSpace(input.Reason),
		StartDate: start,
		EndDate:   end,
	}
	if err := c.Validate(); err != nil {
		return closure.Closure{}, err
	}
	if err := deps.ClosureStore.Save(ctx, c); err != nil {
		return closure.Closure{}, err
	}
	slog.Info("admin_event", "event", "closure_added", "closure_id", c.ID, "admin_id", input.AdminID)
	return c, nil
}
