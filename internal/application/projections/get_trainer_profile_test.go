package projections

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/trainer"
)

type mockProfileStore struct {
	trainers []trainer.Trainer
	awards   map[string][]trainer.Award
	classes  map[string][]schedule.Schedule
}

// GetByID returns a seeded trainer.
func (m *mockProfileStore) GetByID(_ context.Context, id string) (trainer.Trainer, error) {
	for _, t := range m.trainers {
		if t.ID == id {
			return t, nil
		}
	}
	return trainer.Trainer{}, errors.New("trainer not found")
}

// List returns seeded trainers.
func (m *mockProfileStore) List(_ context.Context) ([]trainer.Trainer, error) {
	return m.trainers, nil
}

// ListAwards returns seeded awards.
func (m *mockProfileStore) ListAwards(_ context.Context, trainerID string) ([]trainer.Award, error) {
	return m.awards[trainerID], nil
}

// ListByTrainerID returns seeded classes.
func (m *mockProfileStore) ListByTrainerID(_ context.Context, trainerID string) ([]schedule.Schedule, error) {
	return m.classes[trainerID], nil
}

func profileDeps() GetTrainerProfileDeps {
	store := &mockProfileStore{
		trainers: []trainer.Trainer{
			{ID: "t1", Name: "Kim", Bio: "Boxing coach", Specialties: []string{"Boxing"}},
			{ID: "t2", Name: "Lee"},
		},
		awards: map[string][]trainer.Award{
			"t1": {
				{ID: "a1", Title: "Champion", Year: 2024, Favorite: true},
				{ID: "a2", Title: "Referee", Year: 2020},
			},
		},
		classes: map[string][]schedule.Schedule{
			"t1": {{ID: "c1", ModuleName: "Boxing", TrainerID: "t1", Day: schedule.Monday, StartTime: "18:00", EndTime: "19:00"}},
		},
	}
	return GetTrainerProfileDeps{TrainerStore: store, AwardStore: store, ScheduleStore: store}
}

// TestQueryListTrainers shows only favorite awards and never nil slices.
func TestQueryListTrainers(t *testing.T) {
	got, err := QueryListTrainers(context.Background(), profileDeps())
	if err != nil {
		t.Fatalf("QueryListTrainers() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if len(got[0].Favorites) != 1 || got[0].Favorites[0].ID != "a1" {
		t.Errorf("favorites = %+v", got[0].Favorites)
	}
	if got[1].Specialties == nil || got[1].Favorites == nil {
		t.Errorf("empty trainer should have empty, non-nil slices: %+v", got[1])
	}
}

// TestQueryGetTrainerProfile loads awards and classes.
func TestQueryGetTrainerProfile(t *testing.T) {
	deps := profileDeps()

	p, err := QueryGetTrainerProfile(context.Background(), "t1", deps)
	if err != nil {
		t.Fatalf("QueryGetTrainerProfile() error = %v", err)
	}
	if p.Name != "Kim" || p.Bio != "Boxing coach" || len(p.Awards) != 2 || len(p.Classes) != 1 {
		t.Errorf("profile = %+v", p)
	}

	empty, err := QueryGetTrainerProfile(context.Background(), "t2", deps)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Awards == nil || empty.Classes == nil {
		t.Errorf("empty profile should have non-nil slices: %+v", empty)
	}

	if _, err := QueryGetTrainerProfile(context.Background(), "missing", deps); err == nil {
		t.Error("missing trainer should fail")
	}
}
