package tier

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 60
	MaxFeatures      = 12
	MaxFeatureLength = 120
	// MaxMonthlyCents caps prices at 10,000.00 per month.
	MaxMonthlyCents = 1_000_000
)

// Domain errors
var (
	ErrEmptyName       = errors.New("tier name cannot be empty")
	ErrNameTooLong     = errors.New("tier name cannot exceed 60 characters")
	ErrNegativePrice   = errors.New("tier price cannot be negative")
	ErrPriceTooHigh    = errors.New("tier price cannot exceed 10000.00 per month")
	ErrTooManyFeatures = errors.New("a tier can list at most 12 features")
	ErrFeatureTooLong  = errors.New("tier feature cannot exceed 120 characters")
)

// Tier is a membership plan with a monthly price.
type Tier struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MonthlyCents int      `json:"monthly_cents"`
	Features     []string `json:"features"`
	Highlighted  bool     `json:"highlighted"` // shown as the recommended plan
}

// Validate checks if the Tier has valid data.
// PRE: Tier struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Tier) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if t.MonthlyCents < 0 {
		return ErrNegativePrice
	}
	if t.MonthlyCents > MaxMonthlyCents {
		return ErrPriceTooHigh
	}
	if len(t.Features) > MaxFeatures {
		return ErrTooManyFeatures
	}
	for _, f := range t.Features {
		if len(f) > MaxFeatureLength {
			return ErrFeatureTooLong
		}
	}
	return nil
}

// PriceLabel formats the monthly price as dollars, e.g. "49.00".
func (t *Tier) PriceLabel() string {
	return fmt.Sprintf("%d.%02d", t.MonthlyCents/100, t.MonthlyCents%100)
}

// SortByPrice orders tiers cheapest first, then by name.
func SortByPrice(tiers []Tier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		if tiers[i].MonthlyCents != tiers[j].MonthlyCents {
			return tiers[i].MonthlyCents < tiers[j].MonthlyCents
		}
		return tiers[i].Name < tiers[j].Name
	})
}
