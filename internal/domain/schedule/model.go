package schedule

import (
	"errors"
	"strings"
	"time"

	"gymdesk/internal/domain/classwindow"
)

// Day of week constants
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// ValidDays contains all valid day values, Monday first.
var ValidDays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Max length constants for user-editable fields.
const (
	MaxModuleNameLength = 80
	MaxRoomLength       = 40
)

// Domain errors
var (
	ErrEmptyModuleName   = errors.New("module name cannot be empty")
	ErrModuleNameTooLong = errors.New("module name cannot exceed 80 characters")
	ErrRoomTooLong       = errors.New("room cannot exceed 40 characters")
	ErrInvalidDay        = errors.New("day must be a valid day of the week")
	ErrEmptyStartTime    = errors.New("start time cannot be empty")
	ErrEmptyEndTime      = errors.New("end time cannot be empty")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)

// Schedule represents a recurring weekly class session.
// Sessions never span midnight.
type Schedule struct {
	ID         string `json:"id"`
	ModuleName string `json:"module_name"`          // e.g. Yoga, Boxing
	TrainerID  string `json:"trainer_id,omitempty"` // optional
	Day        string `json:"day"`                  // monday, tuesday, etc.
	StartTime  string `json:"start_time"`           // HH:MM format
	EndTime    string `json:"end_time"`             // HH:MM format
	Room       string `json:"room,omitempty"`
}

// Validate checks if the Schedule has valid data.
// PRE: Schedule struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Schedule) Validate() error {
	if strings.TrimSpace(s.ModuleName) == "" {
		return ErrEmptyModuleName
	}
	if len(s.ModuleName) > MaxModuleNameLength {
		return ErrModuleNameTooLong
	}
	if len(s.Room) > MaxRoomLength {
		return ErrRoomTooLong
	}
	if !IsValidDay(s.Day) {
		return ErrInvalidDay
	}
	if strings.TrimSpace(s.StartTime) == "" {
		return ErrEmptyStartTime
	}
	if strings.TrimSpace(s.EndTime) == "" {
		return ErrEmptyEndTime
	}
	start, err := classwindow.ParseTimeOfDay(s.StartTime)
	if err != nil {
		return err
	}
	end, err := classwindow.ParseTimeOfDay(s.EndTime)
	if err != nil {
		return err
	}
	if minutesOf(end) <= minutesOf(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// DurationHours returns the session duration in hours.
// PRE: StartTime and EndTime are in HH:MM format
// POST: Returns duration as float64 hours, or error if times can't be parsed
func (s *Schedule) DurationHours() (float64, error) {
	start, err := classwindow.ParseTimeOfDay(s.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := classwindow.ParseTimeOfDay(s.EndTime)
	if err != nil {
		return 0, err
	}
	dur := time.Duration(minutesOf(end)-minutesOf(start)) * time.Minute
	if dur < 0 {
		dur = 0
	}
	return dur.Hours(), nil
}

// Session returns the evaluator view of this schedule entry.
func (s *Schedule) Session() classwindow.Session {
	return classwindow.Session{
		ModuleName: s.ModuleName,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
	}
}

// DayOf returns the lower-case weekday name used in schedules for t.
func DayOf(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// DayIndex returns the Monday-first position of day, or -1 if invalid.
func DayIndex(day string) int {
	for i, d := range ValidDays {
		if d == day {
			return i
		}
	}
	return -1
}

// IsValidDay reports whether day is one of ValidDays.
func IsValidDay(day string) bool {
	return DayIndex(day) >= 0
}

func minutesOf(t classwindow.TimeOfDay) int {
	return t.Hour*60 + t.Minute
}
