package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	accountStore "gymdesk/internal/adapters/storage/account"
	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/closure"
	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/tier"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// --- Seed Admin ---

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	Count(ctx context.Context, filter accountStore.ListFilter) (int, error)
	Save(ctx context.Context, a account.Account) error
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdmin creates the first admin account when no admin exists.
// PRE: Database is initialized
// POST: Exactly one admin is created if none existed; otherwise nothing changes
func ExecuteSeedAdmin(ctx context.Context, deps SeedAdminDeps, email, password string) error {
	count, err := deps.AccountStore.Count(ctx, accountStore.ListFilter{Role: account.RoleAdmin})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      account.RoleAdmin,
		CreatedAt: deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := acct.SetPassword(password); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "admin_seeded", "email", acct.Email)
	return nil
}

// --- Seed Schedule ---

// SeedFile is the YAML document accepted by ExecuteSeedSchedule.
type SeedFile struct {
	Replace  bool          `yaml:"replace"`
	Classes  []SeedClass   `yaml:"classes"`
	Closures []SeedClosure `yaml:"closures"`
	Tiers    []SeedTier    `yaml:"tiers"`
}

// SeedClass is one recurring class in a seed file.
type SeedClass struct {
	ID      string `yaml:"id"`
	Module  string `yaml:"module"`
	Day     string `yaml:"day"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Room    string `yaml:"room"`
	Trainer string `yaml:"trainer"` // trainer ID
}

// SeedClosure is one closure in a seed file.
type SeedClosure struct {
	Reason string `yaml:"reason"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
}

// SeedTier is one membership tier in a seed file.
type SeedTier struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	MonthlyCents int      `yaml:"monthly_cents"`
	Features     []string `yaml:"features"`
	Highlighted  bool     `yaml:"highlighted"`
}

// SeedScheduleStore defines the schedule store interface needed by SeedSchedule.
type SeedScheduleStore interface {
	List(ctx context.Context) ([]schedule.Schedule, error)
	Save(ctx context.Context, s schedule.Schedule) error
	Delete(ctx context.Context, id string) error
}

// SeedScheduleDeps holds dependencies for SeedSchedule.
type SeedScheduleDeps struct {
	ScheduleStore SeedScheduleStore
	ClosureStore  ClosureStoreForOrchestrator
	TierStore     SeedTierStore
}

// SeedTierStore defines the tier store interface needed by SeedSchedule.
type SeedTierStore interface {
	Save(ctx context.Context, t tier.Tier) error
}

// SeedScheduleResult reports how many records were written.
type SeedScheduleResult struct {
	Classes  int
	Closures int
	Tiers    int
	Removed  int
}

// seedNamespace derives stable IDs so re-running a seed file updates rather than duplicates.
var seedNamespace = uuid.MustParse("5b0d7c52-3f9e-4a51-9d2e-8c2f4f0e6a11")

// ParseSeedFile decodes a seed document, rejecting unknown keys.
func ParseSeedFile(data []byte) (SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return SeedFile{}, fmt.Errorf("parse seed file: %w", err)
	}
	return f, nil
}

// ExecuteSeedSchedule loads classes, closures and tiers from a seed document.
// PRE: data is a YAML SeedFile
// POST: Nothing is written unless every entry validates; with replace, classes not in the file are removed
func ExecuteSeedSchedule(ctx context.Context, data []byte, deps SeedScheduleDeps) (SeedScheduleResult, error) {
	f, err := ParseSeedFile(data)
	if err != nil {
		return SeedScheduleResult{}, err
	}

	classes := make([]schedule.Schedule, 0, len(f.Classes))
	for i, c := range f.Classes {
		s := schedule.Schedule{
			ID:         c.ID,
			ModuleName: strings.TrimSpace(c.Module),
			TrainerID:  strings.TrimSpace(c.Trainer),
			Day:        strings.ToLower(strings.TrimSpace(c.Day)),
			StartTime:  strings.TrimSpace(c.Start),
			EndTime:    strings.TrimSpace(c.End),
			Room:       strings.TrimSpace(c.Room),
		}
		if err := s.Validate(); err != nil {
			return SeedScheduleResult{}, fmt.Errorf("classes[%d] %q: %w", i, c.Module, err)
		}
		if s.ID == "" {
			s.ID = uuid.NewSHA1(seedNamespace, []byte(s.Day+"|"+s.StartTime+"|"+s.ModuleName)).String()
		}
		classes = append(classes, s)
	}

	closures := make([]closure.Closure, 0, len(f.Closures))
	for i, c := range f.Closures {
		start, err := time.Parse(closure.DateLayout, c.Start)
		if err != nil {
			return SeedScheduleResult{}, fmt.Errorf("closures[%d]: %w", i, ErrInvalidDate)
		}
		end := start
		if c.End != "" {
			if end, err = time.Parse(closure.DateLayout, c.End); err != nil {
				return SeedScheduleResult{}, fmt.Errorf("closures[%d]: %w", i, ErrInvalidDate)
			}
		}
		cl := closure.Closure{
			ID:        uuid.NewSHA1(seedNamespace, []byte("closure|"+c.Start+"|"+c.Reason)).String(),
			Reason:    strings.TrimSpace(c.Reason),
			StartDate: start,
			EndDate:   end,
		}
		if err := cl.Validate(); err != nil {
			return SeedScheduleResult{}, fmt.Errorf("closures[%d]: %w", i, err)
		}
		closures = append(closures, cl)
	}

	tiers := make([]tier.Tier, 0, len(f.Tiers))
	for i, t := range f.Tiers {
		tr := tier.Tier{ID: t.ID, Name: strings.TrimSpace(t.Name), MonthlyCents: t.MonthlyCents, Features: t.Features, Highlighted: t.Highlighted}
		if tr.ID == "" {
			tr.ID = uuid.NewSHA1(seedNamespace, []byte("tier|"+tr.Name)).String()
		}
		if err := tr.Validate(); err != nil {
			return SeedScheduleResult{}, fmt.Errorf("tiers[%d] %q: %w", i, t.Name, err)
		}
		tiers = append(tiers, tr)
	}

	var res SeedScheduleResult
	if f.Replace {
		keep := make(map[string]bool, len(classes))
		for _, c := range classes {
			keep[c.ID] = true
		}
		existing, err := deps.ScheduleStore.List(ctx)
		if err != nil {
			return res, err
		}
		for _, e := range existing {
			if keep[e.ID] {
				continue
			}
			if err := deps.ScheduleStore.Delete(ctx, e.ID); err != nil {
				return res, err
			}
			res.Removed++
		}
	}
	for _, c := range classes {
		if err := deps.ScheduleStore.Save(ctx, c); err != nil {
			return res, fmt.Errorf("save class %s: %w", c.ID, err)
		}
		res.Classes++
	}
	for _, c := range closures {
		if err := deps.ClosureStore.Save(ctx, c); err != nil {
			return res, fmt.Errorf("save closure %s: %w", c.ID, err)
		}
		res.Closures++
	}
	for _, t := range tiers {
		if err := deps.TierStore.Save(ctx, t); err != nil {
			return res, fmt.Errorf("save tier %s: %w", t.ID, err)
		}
		res.Tiers++
	}

	slog.Info("seed_event", "event", "schedule_seeded", "classes", res.Classes, "closures", res.Closures, "tiers", res.Tiers, "removed", res.Removed)
	return res, nil
}
