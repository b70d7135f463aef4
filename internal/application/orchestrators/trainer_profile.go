package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gymdesk/internal/domain/trainer"
)

// TrainerStoreForOrchestrator defines the store interface needed by trainer orchestrators.
type TrainerStoreForOrchestrator interface {
	GetByAccountID(ctx context.Context, accountID string) (trainer.Trainer, error)
	Save(ctx context.Context, t trainer.Trainer) error
	ListAwards(ctx context.Context, trainerID string) ([]trainer.Award, error)
	SaveAward(ctx context.Context, a trainer.Award) error
}

// ErrAwardNotFound is returned when the award does not belong to the caller's profile.
var ErrAwardNotFound = errors.New("award not found")

// --- Update Trainer Profile ---

// UpdateTrainerProfileInput carries the profile fields a trainer edits. Nil fields are unchanged.
type UpdateTrainerProfileInput struct {
	AccountID   string
	Name        *string
	Bio         *string
	Specialties []string // nil leaves specialties unchanged
	PhotoURL    *string
}

// TrainerDeps holds dependencies for the trainer orchestrators.
type TrainerDeps struct {
	TrainerStore TrainerStoreForOrchestrator
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteUpdateTrainerProfile edits the caller's own trainer profile.
// PRE: AccountID belongs to a trainer with a profile
// POST: Profile is validated and saved with UpdatedAt set
func ExecuteUpdateTrainerProfile(ctx context.Context, input UpdateTrainerProfileInput, deps TrainerDeps) (trainer.Trainer, error) {
	t, err := deps.TrainerStore.GetByAccountID(ctx, input.AccountID)
	if err != nil {
		return trainer.Trainer{}, err
	}
	if input.Name != nil {
		t.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		t.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Specialties != nil {
		t.Specialties = trainer.NormalizeSpecialties(input.Specialties)
	}
	if input.PhotoURL != nil {
		t.PhotoURL = strings.TrimSpace(*input.PhotoURL)
	}
	if err := t.Validate(); err != nil {
		return trainer.Trainer{}, err
	}
	t.UpdatedAt = deps.Now()
	if err := deps.TrainerStore.Save(ctx, t); err != nil {
		return trainer.Trainer{}, err
	}
	return t, nil
}

// --- Awards ---

// AddAwardInput carries input for the add award orchestrator.
type AddAwardInput struct {
	AccountID string
	Title     string
	Year      int
}

// ExecuteAddAward adds an award to the caller's profile.
// PRE: AccountID belongs to a trainer with a profile
// POST: Award is saved, not favorited
func ExecuteAddAward(ctx context.Context, input AddAwardInput, deps TrainerDeps) (trainer.Award, error) {
	t, err := deps.TrainerStore.GetByAccountID(ctx, input.AccountID)
	if err != nil {
		return trainer.Award{}, err
	}
	now := deps.Now()
	a := trainer.Award{
		ID:        deps.GenerateID(),
		TrainerID: t.ID,
		Title:     strings.TrimSpace(input.Title),
		Year:      input.Year,
		CreatedAt: now,
	}
	if err := a.Validate(now); err != nil {
		return trainer.Award{}, err
	}
	if err := deps.TrainerStore.SaveAward(ctx, a); err != nil {
		return trainer.Award{}, err
	}
	return a, nil
}

// ToggleFavoriteAwardInput carries input for the toggle favorite orchestrator.
type ToggleFavoriteAwardInput struct {
	AccountID string
	AwardID   string
}

// ExecuteToggleFavoriteAward flips the favorite flag on one of the caller's awards.
// PRE: AwardID belongs to the caller's profile
// POST: At most trainer.MaxFavoriteAwards awards are favorited
func ExecuteToggleFavoriteAward(ctx context.Context, input ToggleFavoriteAwardInput, deps TrainerDeps) (trainer.Award, error) {
	t, err := deps.TrainerStore.GetByAccountID(ctx, input.AccountID)
	if err != nil {
		return trainer.Award{}, err
	}
	awards, err := deps.TrainerStore.ListAwards(ctx, t.ID)
	if err != nil {
		return trainer.Award{}, err
	}
	idx := -1
	for i, a := range awards {
		if a.ID == input.AwardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return trainer.Award{}, ErrAwardNotFound
	}
	if err := trainer.ToggleFavorite(awards, idx); err != nil {
		return trainer.Award{}, err
	}
	if err := deps.TrainerStore.SaveAward(ctx, awards[idx]); err != nil {
		return trainer.Award{}, err
	}
	slog.Info("trainer_event", "event", "award_favorite_toggled", "trainer_id", t.ID, "award_id", input.AwardID, "favorite", awards[idx].Favorite)
	return awards[idx], nil
}
