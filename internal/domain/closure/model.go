package closure

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyReason    = errors.New("closure reason cannot be empty")
	ErrEmptyStartDate = errors.New("start date cannot be zero")
	ErrEmptyEndDate   = errors.New("end date cannot be zero")
	ErrInvalidDates   = errors.New("start date must be before or equal to end date")
)

// DateLayout is the storage and API format for closure dates.
const DateLayout = "2006-01-02"

// Closure is a day (or range of days) when the gym runs no classes.
type Closure struct {
	ID        string    `json:"id"`
	Reason    string    `json:"reason"`
	StartDate time.Time `json:"start_date"` // date only
	EndDate   time.Time `json:"end_date"`   // date only, inclusive
}

// Validate checks if the Closure has valid data.
// PRE: Closure struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Closure) Validate() error {
	if strings.TrimSpace(c.Reason) == "" {
		return ErrEmptyReason
	}
	if c.StartDate.IsZero() {
		return ErrEmptyStartDate
	}
	if c.EndDate.IsZero() {
		return ErrEmptyEndDate
	}
	if c.StartDate.After(c.EndDate) {
		return ErrInvalidDates
	}
	return nil
}

// Contains returns true if the calendar date of t (in t's location) falls within the closure.
// INVARIANT: Closure fields are not mutated
func (c *Closure) Contains(t time.Time) bool {
	d := t.Format(DateLayout)
	return d >= c.StartDate.Format(DateLayout) && d <= c.EndDate.Format(DateLayout)
}
