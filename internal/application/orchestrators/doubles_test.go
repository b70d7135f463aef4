package orchestrators

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	emailAdapter "gymdesk/internal/adapters/email"
	accountStore "gymdesk/internal/adapters/storage/account"
	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/closure"
	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/testimonial"
	"gymdesk/internal/domain/tier"
	"gymdesk/internal/domain/trainer"
)

// --- in-memory test doubles ---

var testNow = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type memAccountStore struct {
	byID  map[string]account.Account
	saves int
}

func newMemAccountStore(accounts ...account.Account) *memAccountStore {
	s := &memAccountStore{byID: make(map[string]account.Account)}
	for _, a := range accounts {
		s.byID[a.ID] = a
	}
	return s
}

// GetByID returns a stored account.
func (s *memAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := s.byID[id]
	if !ok {
		return account.Account{}, fmt.Errorf("account not found")
	}
	return a, nil
}

// GetByEmail returns a stored account by case-insensitive email.
func (s *memAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range s.byID {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return account.Account{}, fmt.Errorf("account not found")
}

// Save stores an account.
func (s *memAccountStore) Save(_ context.Context, a account.Account) error {
	s.byID[a.ID] = a
	s.saves++
	return nil
}

// Count counts accounts with the filter's role.
func (s *memAccountStore) Count(_ context.Context, f accountStore.ListFilter) (int, error) {
	n := 0
	for _, a := range s.byID {
		if f.Role == "" || a.Role == f.Role {
			n++
		}
	}
	return n, nil
}

// ListAdmins returns every admin account.
func (s *memAccountStore) ListAdmins(_ context.Context) ([]account.Account, error) {
	var out []account.Account
	for _, a := range s.byID {
		if a.IsAdmin() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memTrainerStore struct {
	trainers map[string]trainer.Trainer // keyed by ID
	awards   map[string]trainer.Award
}

func newMemTrainerStore(trainers ...trainer.Trainer) *memTrainerStore {
	s := &memTrainerStore{trainers: make(map[string]trainer.Trainer), awards: make(map[string]trainer.Award)}
	for _, t := range trainers {
		s.trainers[t.ID] = t
	}
	return s
}

// GetByID returns a stored trainer.
func (s *memTrainerStore) GetByID(_ context.Context, id string) (trainer.Trainer, error) {
	t, ok := s.trainers[id]
	if !ok {
		return trainer.Trainer{}, fmt.Errorf("trainer not found")
	}
	return t, nil
}

// GetByAccountID returns the trainer linked to an account.
func (s *memTrainerStore) GetByAccountID(_ context.Context, accountID string) (trainer.Trainer, error) {
	for _, t := range s.trainers {
		if t.AccountID == accountID {
			return t, nil
		}
	}
	return trainer.Trainer{}, fmt.Errorf("trainer not found")
}

// Save stores a trainer.
func (s *memTrainerStore) Save(_ context.Context, t trainer.Trainer) error {
	s.trainers[t.ID] = t
	return nil
}

// ListAwards returns a trainer's awards ordered by ID.
func (s *memTrainerStore) ListAwards(_ context.Context, trainerID string) ([]trainer.Award, error) {
	var out []trainer.Award
	for _, a := range s.awards {
		if a.TrainerID == trainerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveAward stores an award.
func (s *memTrainerStore) SaveAward(_ context.Context, a trainer.Award) error {
	s.awards[a.ID] = a
	return nil
}

type memTestimonialStore struct {
	byID map[string]testimonial.Testimonial
}

// GetByID returns a stored testimonial.
func (s *memTestimonialStore) GetByID(_ context.Context, id string) (testimonial.Testimonial, error) {
	t, ok := s.byID[id]
	if !ok {
		return testimonial.Testimonial{}, fmt.Errorf("testimonial not found")
	}
	return t, nil
}

// Save stores a testimonial.
func (s *memTestimonialStore) Save(_ context.Context, t testimonial.Testimonial) error {
	if s.byID == nil {
		s.byID = make(map[string]testimonial.Testimonial)
	}
	s.byID[t.ID] = t
	return nil
}

type memScheduleStore struct {
	byID map[string]schedule.Schedule
}

func newMemScheduleStore(items ...schedule.Schedule) *memScheduleStore {
	s := &memScheduleStore{byID: make(map[string]schedule.Schedule)}
	for _, it := range items {
		s.byID[it.ID] = it
	}
	return s
}

// GetByID returns a stored schedule.
func (s *memScheduleStore) GetByID(_ context.Context, id string) (schedule.Schedule, error) {
	it, ok := s.byID[id]
	if !ok {
		return schedule.Schedule{}, fmt.Errorf("schedule not found")
	}
	return it, nil
}

// Save stores a schedule.
func (s *memScheduleStore) Save(_ context.Context, it schedule.Schedule) error {
	s.byID[it.ID] = it
	return nil
}

// Delete removes a schedule.
func (s *memScheduleStore) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

// List returns every schedule ordered by ID.
func (s *memScheduleStore) List(_ context.Context) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, it := range s.byID {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memClosureStore struct {
	saved []closure.Closure
}

// Save records a closure.
func (s *memClosureStore) Save(_ context.Context, c closure.Closure) error {
	s.saved = append(s.saved, c)
	return nil
}

type memTierStore struct {
	byID map[string]tier.Tier
}

// GetByID returns a stored tier.
func (s *memTierStore) GetByID(_ context.Context, id string) (tier.Tier, error) {
	t, ok := s.byID[id]
	if !ok {
		return tier.Tier{}, fmt.Errorf("tier not found")
	}
	return t, nil
}

// Save stores a tier.
func (s *memTierStore) Save(_ context.Context, t tier.Tier) error {
	if s.byID == nil {
		s.byID = make(map[string]tier.Tier)
	}
	s.byID[t.ID] = t
	return nil
}

type failingSender struct{}

// Send always fails.
func (failingSender) Send(context.Context, emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	return emailAdapter.SendResult{}, fmt.Errorf("smtp down")
}

// SendBatch always fails.
func (failingSender) SendBatch(context.Context, []emailAdapter.SendRequest) ([]emailAdapter.SendResult, error) {
	return nil, fmt.Errorf("smtp down")
}

func mustAccount(id, email, role, password string) account.Account {
	a := account.Account{ID: id, Email: email, Role: role, CreatedAt: testNow}
	if password != "" {
		if err := a.SetPassword(password); err != nil {
			panic(err)
		}
	}
	return a
}
