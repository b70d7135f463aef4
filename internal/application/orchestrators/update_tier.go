package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/tier"
)

// TierStoreForOrchestrator defines the store interface needed by UpdateTier.
type TierStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (tier.Tier, error)
	Save(ctx context.Context, t tier.Tier) error
}

// UpdateTierInput carries the editable tier fields. Nil fields are unchanged.
type UpdateTierInput struct {
	TierID       string
	AdminID      string
	Name         *string
	MonthlyCents *int
	Features     []string // nil leaves features unchanged
	Highlighted  *bool
}

// UpdateTierDeps holds dependencies for UpdateTier.
type UpdateTierDeps struct {
	TierStore TierStoreForOrchestrator
}

// ExecuteUpdateTier edits a membership tier's name, price or features.
// PRE: TierID exists
// POST: Tier is validated and saved
func ExecuteUpdateTier(ctx context.Context, input UpdateTierInput, deps UpdateTierDeps) (tier.Tier, error) {
	t, err := deps.TierStore.GetByID(ctx, input.TierID)
	if err != nil {
		return tier.Tier{}, err
	}
	previous := t.MonthlyCents
	if input.Name != nil {
		t.Name = strings.TrimSpace(*input.Name)
	}
	if input.MonthlyCents != nil {
		t.MonthlyCents = *input.MonthlyCents
	}
	if input.Features != nil {
		features := make([]string, 0, len(input.Features))
		for _, f := range input.Features {
			if f = strings.TrimSpace(f); f != "" {
				features = append(features, f)
			}
		}
		t.Features = features
	}
	if input.Highlighted != nil {
		t.Highlighted = *input.Highlighted
	}
	if err := t.Validate(); err != nil {
		return tier.Tier{}, err
	}
	if err := deps.TierStore.Save(ctx, t); err != nil {
		return tier.Tier{}, err
	}
	slog.Info("admin_event", "event", "tier_updated", "tier_id", t.ID, "admin_id", input.AdminID, "from_cents", previous, "to_cents", t.MonthlyCents)
	return t, nil
}
