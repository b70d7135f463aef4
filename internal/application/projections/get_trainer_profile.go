package projections

import (
	"context"

	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/trainer"
)

// TrainerProfileStore defines the store interface needed by this projection.
type TrainerProfileStore interface {
	GetByID(ctx context.Context, id string) (trainer.Trainer, error)
	List(ctx context.Context) ([]trainer.Trainer, error)
}

// TrainerAwardStore defines the store interface needed by this projection.
type TrainerAwardStore interface {
	ListAwards(ctx context.Context, trainerID string) ([]trainer.Award, error)
}

// TrainerScheduleStore defines the store interface needed by this projection.
type TrainerScheduleStore interface {
	ListByTrainerID(ctx context.Context, trainerID string) ([]schedule.Schedule, error)
}

// GetTrainerProfileDeps holds dependencies for the trainer projections.
type GetTrainerProfileDeps struct {
	TrainerStore  TrainerProfileStore
	AwardStore    TrainerAwardStore
	ScheduleStore TrainerScheduleStore
}

// TrainerSummary is the public card shown in the trainer listing.
type TrainerSummary struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Specialties []string        `json:"specialties"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	Favorites   []trainer.Award `json:"favorite_awards"`
}

// TrainerProfile is the full public trainer page.
type TrainerProfile struct {
	TrainerSummary
	Bio     string              `json:"bio"`
	Awards  []trainer.Award     `json:"awards"`
	Classes []schedule.Schedule `json:"classes"`
}

// QueryListTrainers returns every trainer with their favorite awards.
// PRE: none
// POST: Trainers are ordered by name
func QueryListTrainers(ctx context.Context, deps GetTrainerProfileDeps) ([]TrainerSummary, error) {
	trainers, err := deps.TrainerStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TrainerSummary, 0, len(trainers))
	for _, t := range trainers {
		awards, err := deps.AwardStore.ListAwards(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(t, awards))
	}
	return out, nil
}

// QueryGetTrainerProfile loads one trainer with awards and the classes they lead.
// PRE: id is non-empty
// POST: Returns the store error unchanged when the trainer does not exist
func QueryGetTrainerProfile(ctx context.Context, id string, deps GetTrainerProfileDeps) (TrainerProfile, error) {
	t, err := deps.TrainerStore.GetByID(ctx, id)
	if err != nil {
		return TrainerProfile{}, err
	}
	awards, err := deps.AwardStore.ListAwards(ctx, t.ID)
	if err != nil {
		return TrainerProfile{}, err
	}
	classes, err := deps.ScheduleStore.ListByTrainerID(ctx, t.ID)
	if err != nil {
		return TrainerProfile{}, err
	}
	if awards == nil {
		awards = []trainer.Award{}
	}
	if classes == nil {
		classes = []schedule.Schedule{}
	}
	return TrainerProfile{
		TrainerSummary: summarize(t, awards),
		Bio:            t.Bio,
		Awards:         awards,
		Classes:        classes,
	}, nil
}

func summarize(t trainer.Trainer, awards []trainer.Award) TrainerSummary {
	favorites := []trainer.Award{}
	for _, a := range awards {
		if a.Favorite {
			favorites = append(favorites, a)
		}
	}
	specialties := t.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return TrainerSummary{
		ID:          t.ID,
		Name:        t.Name,
		Specialties: specialties,
		PhotoURL:    t.PhotoURL,
		Favorites:   favorites,
	}
}
