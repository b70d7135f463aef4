package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/classwindow"
	"gymdesk/internal/domain/closure"
	"gymdesk/internal/domain/page"
	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/testimonial"
	"gymdesk/internal/domain/tier"
	"gymdesk/internal/domain/trainer"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

func gymNow() time.Time {
	return clk.Now()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal_error", "path", r.URL.Path, "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response_encode_failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// currentSession returns the caller's session. Routes behind RequireAuth always have one.
func currentSession(r *http.Request) middleware.Session {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess
}

// badRequestErrors are validation failures whose message is safe to show the caller.
var badRequestErrors = []error{
	account.ErrInvalidEmail, account.ErrEmptyEmail, account.ErrEmailTooLong, account.ErrInvalidRole,
	account.ErrEmptyPassword, account.ErrPasswordTooShort, account.ErrWrongPassword,
	account.ErrDisplayNameLength, account.ErrPhoneTooLong, account.ErrBanReasonTooLong,
	orchestrators.ErrCurrentPasswordRequired, orchestrators.ErrUnknownTrainer,
	orchestrators.ErrInvalidDate, orchestrators.ErrInvalidDecision,
	classwindow.ErrInvalidTimeFormat,
	schedule.ErrEmptyModuleName, schedule.ErrModuleNameTooLong, schedule.ErrRoomTooLong,
	schedule.ErrInvalidDay, schedule.ErrEmptyStartTime, schedule.ErrEmptyEndTime, schedule.ErrEndBeforeStart,
	closure.ErrEmptyReason, closure.ErrEmptyStartDate, closure.ErrEmptyEndDate, closure.ErrInvalidDates,
	trainer.ErrEmptyAccountID, trainer.ErrEmptyName, trainer.ErrNameTooLong, trainer.ErrBioTooLong,
	trainer.ErrTooManySpecialties, trainer.ErrSpecialtyTooLong, trainer.ErrInvalidPhotoURL,
	trainer.ErrEmptyAwardTitle, trainer.ErrAwardTitleTooLong, trainer.ErrInvalidAwardYear,
	page.ErrInvalidSlug, page.ErrEmptyTitle, page.ErrTitleTooLong, page.ErrBodyTooLong,
	testimonial.ErrEmptyAuthor, testimonial.ErrEmptyContent, testimonial.ErrContentTooLong,
	testimonial.ErrInvalidRating, testimonial.ErrInvalidStatus,
	tier.ErrEmptyName, tier.ErrNameTooLong, tier.ErrNegativePrice, tier.ErrPriceTooHigh,
	tier.ErrTooManyFeatures, tier.ErrFeatureTooLong,
}

// conflictErrors reject a request that is valid but clashes with current state.
var conflictErrors = []error{
	orchestrators.ErrEmailTaken, account.ErrAlreadyBanned, account.ErrNotBanned,
	testimonial.ErrAlreadyModerated, trainer.ErrTooManyFavorites,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeDomainError maps orchestrator and store errors to a status code.
// Unrecognised errors are treated as internal and never shown to the caller.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, orchestrators.ErrAwardNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, orchestrators.ErrAccountLocked):
		writeError(w, http.StatusLocked, err.Error())
	case errors.Is(err, orchestrators.ErrAccountBanned),
		errors.Is(err, orchestrators.ErrSelfModeration),
		errors.Is(err, account.ErrCannotBanAdmin):
		writeError(w, http.StatusForbidden, err.Error())
	case matchesAny(err, conflictErrors):
		writeError(w, http.StatusConflict, err.Error())
	case matchesAny(err, badRequestErrors):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, r, err)
	}
}
