package web

import (
	"net/http"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
)

func trainerDeps() orchestrators.TrainerDeps {
	return orchestrators.TrainerDeps{
		TrainerStore: stores.TrainerStore,
		GenerateID:   generateID,
		Now:          gymNow,
	}
}

// handleGetOwnTrainerProfile handles GET /api/trainer/profile
func handleGetOwnTrainerProfile(w http.ResponseWriter, r *http.Request) {
	t, err := stores.TrainerStore.GetByAccountID(r.Context(), currentSession(r).AccountID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	profile, err := projections.QueryGetTrainerProfile(r.Context(), t.ID, trainerProfileDeps())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleUpdateTrainerProfile handles PATCH /api/trainer/profile
func handleUpdateTrainerProfile(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        *string  `json:"name"`
		Bio         *string  `json:"bio"`
		Specialties []string `json:"specialties"`
		PhotoURL    *string  `json:"photo_url"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	t, err := orchestrators.ExecuteUpdateTrainerProfile(r.Context(), orchestrators.UpdateTrainerProfileInput{
		AccountID:   currentSession(r).AccountID,
		Name:        input.Name,
		Bio:         input.Bio,
		Specialties: input.Specialties,
		PhotoURL:    input.PhotoURL,
	}, trainerDeps())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleAddAward handles POST /api/trainer/awards
func handleAddAward(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	a, err := orchestrators.ExecuteAddAward(r.Context(), orchestrators.AddAwardInput{
		AccountID: currentSession(r).AccountID,
		Title:     input.Title,
		Year:      input.Year,
	}, trainerDeps())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// handleToggleFavoriteAward handles PATCH /api/trainer/awards/{id}/favorite
func handleToggleFavoriteAward(w http.ResponseWriter, r *http.Request) {
	a, err := orchestrators.ExecuteToggleFavoriteAward(r.Context(), orchestrators.ToggleFavoriteAwardInput{
		AccountID: currentSession(r).AccountID,
		AwardID:   r.PathValue("id"),
	}, trainerDeps())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
