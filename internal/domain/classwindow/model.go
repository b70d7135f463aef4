package classwindow

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Phase is the temporal state of a class session relative to an instant.
type Phase string

// Phase constants, in progression order.
const (
	PhaseUpcoming     Phase = "upcoming"
	PhaseStartingSoon Phase = "starting_soon"
	PhaseOngoing      Phase = "ongoing"
	PhaseCompleted    Phase = "completed"
)

// SoonWindowMinutes is the largest minutes-to-start that still counts as starting soon.
const SoonWindowMinutes = 60

// Domain errors
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM 24-hour format")
)

// Session is one scheduled class occurrence for the current day.
type Session struct {
	ModuleName string
	StartTime  string // HH:MM
	EndTime    string // HH:MM
}

// State is the evaluator output for a single session at a single instant.
// It is recomputed on every tick and never stored.
type State struct {
	Phase           Phase    `json:"phase"`
	MinutesToStart  *int     `json:"minutes_to_start"`
	ProgressPercent *float64 `json:"progress_percent"`
}

// Rank returns the position of the phase in the daily progression.
// Unknown phases rank below Upcoming.
func (p Phase) Rank() int {
	switch p {
	case PhaseUpcoming:
		return 0
	case PhaseStartingSoon:
		return 1
	case PhaseOngoing:
		return 2
	case PhaseCompleted:
		return 3
	}
	return -1
}

// TimeOfDay is a parsed HH:MM value.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict "HH:MM" 24-hour string.
// PRE: none
// POST: Returns the parsed value or ErrInvalidTimeFormat
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on malformed input.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// On returns the instant at this time of day on the calendar date of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	y, mo, d := ref.Date()
	return time.Date(y, mo, d, t.Hour, t.Minute, 0, 0, ref.Location())
}

// String formats the value as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Evaluate classifies a session against now.
// Session times are anchored to the calendar date of now; callers select
// only the sessions whose weekday matches now.
// PRE: session.StartTime and session.EndTime are valid HH:MM (panics otherwise)
// POST: Exactly one of MinutesToStart/ProgressPercent is set for
// upcoming/starting_soon/ongoing; neither is set for completed
// INVARIANT: Pure; safe for concurrent use
func Evaluate(session Session, now time.Time) State {
	start := MustParseTimeOfDay(session.StartTime).On(now)
	end := MustParseTimeOfDay(session.EndTime).On(now)

	if now.Before(start) {
		minutes := roundMinutes(start.Sub(now))
		phase := PhaseUpcoming
		if minutes <= SoonWindowMinutes && minutes > 0 {
			phase = PhaseStartingSoon
		}
		return State{Phase: phase, MinutesToStart: &minutes}
	}

	if now.Before(end) {
		progress := progressPercent(start, end, now)
		return State{Phase: PhaseOngoing, ProgressPercent: &progress}
	}

	return State{Phase: PhaseCompleted}
}

// EvaluateAll evaluates each session at the same instant, preserving order.
func EvaluateAll(sessions []Session, now time.Time) []State {
	states := make([]State, len(sessions))
	for i, s := range sessions {
		states[i] = Evaluate(s, now)
	}
	return states
}

// roundMinutes rounds half up, matching the behaviour of the booking widgets.
func roundMinutes(d time.Duration) int {
	return int(math.Floor(d.Minutes() + 0.5))
}

// progressPercent returns elapsed fraction of [start, end) as 0..100.
// A zero or negative duration yields 100.
func progressPercent(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	pct := float64(now.Sub(start)) / float64(total) * 100
	return math.Max(0, math.Min(100, pct))
}
