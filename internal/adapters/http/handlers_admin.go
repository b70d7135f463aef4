package web

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"gymdesk/internal/adapters/http/perf"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/closure"
	"gymdesk/internal/domain/testimonial"
)

// --- Users ---

// handleAdminListUsers handles GET /api/admin/users?page=&per_page=&sort=&q=&role=&status=
func handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), projections.UserSortColumns, projections.UserFilterKeys)
	result, err := projections.QueryGetUserList(r.Context(), params, gymNow(), projections.GetUserListDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func banDeps() orchestrators.BanAccountDeps {
	return orchestrators.BanAccountDeps{
		AccountStore: stores.AccountStore,
		Sender:       emailSender,
		GymName:      gymName,
		Now:          gymNow,
	}
}

// handleAdminBan handles POST /api/admin/users/{id}/ban. The account is signed out everywhere.
func handleAdminBan(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	acct, err := orchestrators.ExecuteBanAccount(r.Context(), orchestrators.BanAccountInput{
		AccountID: r.PathValue("id"),
		AdminID:   currentSession(r).AccountID,
		Reason:    input.Reason,
	}, banDeps())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	sessions.DeleteByAccount(acct.ID)
	writeJSON(w, http.StatusOK, projections.NewUserRow(acct, gymNow()))
}

// handleAdminUnban handles POST /api/admin/users/{id}/unban
func handleAdminUnban(w http.ResponseWriter, r *http.Request) {
	acct, err := orchestrators.ExecuteUnbanAccount(r.Context(), orchestrators.BanAccountInput{
		AccountID: r.PathValue("id"),
		AdminID:   currentSession(r).AccountID,
	}, banDeps())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projections.NewUserRow(acct, gymNow()))
}

// handleAdminChangeRole handles PUT /api/admin/users/{id}/role.
// Existing sessions carry the old role, so the account is signed out.
func handleAdminChangeRole(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Role string `json:"role"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	acct, err := orchestrators.ExecuteChangeRole(r.Context(), orchestrators.ChangeRoleInput{
		AccountID: r.PathValue("id"),
		AdminID:   currentSession(r).AccountID,
		Role:      input.Role,
	}, orchestrators.ChangeRoleDeps{
		AccountStore: stores.AccountStore,
		TrainerStore: stores.TrainerStore,
		GenerateID:   generateID,
		Now:          gymNow,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	sessions.DeleteByAccount(acct.ID)
	writeJSON(w, http.StatusOK, projections.NewUserRow(acct, gymNow()))
}

// --- Classes and closures ---

// handleAdminSaveClass handles POST /api/admin/classes and PUT /api/admin/classes/{id}
func handleAdminSaveClass(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ModuleName string `json:"module_name"`
		TrainerID  string `json:"trainer_id"`
		Day        string `json:"day"`
		StartTime  string `json:"start_time"`
		EndTime    string `json:"end_time"`
		Room       string `json:"room"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	id := r.PathValue("id")
	s, err := orchestrators.ExecuteSaveClass(r.Context(), orchestrators.SaveClassInput{
		ID:         id,
		ModuleName: input.ModuleName,
		TrainerID:  input.TrainerID,
		Day:        input.Day,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Room:       input.Room,
		AdminID:    currentSession(r).AccountID,
	}, orchestrators.SaveClassDeps{
		ScheduleStore: stores.ScheduleStore,
		TrainerStore:  stores.TrainerStore,
		GenerateID:    generateID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, s)
}

// handleAdminDeleteClass handles DELETE /api/admin/classes/{id}
func handleAdminDeleteClass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if _, err := stores.ScheduleStore.GetByID(ctx, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := stores.ScheduleStore.Delete(ctx, id); err != nil {
		internalError(w, r, err)
		return
	}
	slog.Info("admin_event", "event", "class_deleted", "schedule_id", id, "admin_id", currentSession(r).AccountID)
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminListClosures handles GET /api/admin/closures
func handleAdminListClosures(w http.ResponseWriter, r *http.Request) {
	list, err := stores.ClosureStore.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if list == nil {
		list = []closure.Closure{}
	}
	writeJSON(w, http.StatusOK, list)
}

// handleAdminAddClosure handles POST /api/admin/closures
func handleAdminAddClosure(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Reason    string `json:"reason"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	c, err := orchestrators.ExecuteAddClosure(r.Context(), orchestrators.AddClosureInput{
		Reason:    input.Reason,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		AdminID:   currentSession(r).AccountID,
	}, orchestrators.AddClosureDeps{
		ClosureStore: stores.ClosureStore,
		GenerateID:   generateID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// handleAdminDeleteClosure handles DELETE /api/admin/closures/{id}
func handleAdminDeleteClosure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if _, err := stores.ClosureStore.GetByID(ctx, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := stores.ClosureStore.Delete(ctx, id); err != nil {
		internalError(w, r, err)
		return
	}
	slog.Info("admin_event", "event", "closure_deleted", "closure_id", id, "admin_id", currentSession(r).AccountID)
	w.WriteHeader(http.StatusNoContent)
}

// --- Content ---

// handleAdminUpdatePage handles PUT /api/admin/pages/{slug}
func handleAdminUpdatePage(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	p, err := orchestrators.ExecuteUpdatePage(r.Context(), orchestrators.UpdatePageInput{
		Slug:    r.PathValue("slug"),
		Title:   input.Title,
		Body:    input.Body,
		AdminID: currentSession(r).AccountID,
	}, orchestrators.UpdatePageDeps{
		PageStore: stores.PageStore,
		Now:       gymNow,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	html, err := renderMarkdown(p.Body)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Page: p, HTML: html})
}

// handleAdminListTestimonials handles GET /api/admin/testimonials?status=
func handleAdminListTestimonials(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !slices.Contains(testimonial.ValidStatuses, status) {
		writeError(w, http.StatusBadRequest, testimonial.ErrInvalidStatus.Error())
		return
	}
	list, err := stores.TestimonialStore.ListByStatus(r.Context(), status)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if list == nil {
		list = []testimonial.Testimonial{}
	}
	writeJSON(w, http.StatusOK, list)
}

// handleAdminModerateTestimonial handles POST /api/admin/testimonials/{id}/{approve|reject}
func handleAdminModerateTestimonial(w http.ResponseWriter, r *http.Request) {
	t, err := orchestrators.ExecuteModerateTestimonial(r.Context(), orchestrators.ModerateTestimonialInput{
		TestimonialID: r.PathValue("id"),
		AdminID:       currentSession(r).AccountID,
		Decision:      r.PathValue("decision"),
	}, orchestrators.ModerateTestimonialDeps{
		TestimonialStore: stores.TestimonialStore,
		AccountStore:     stores.AccountStore,
		Sender:           emailSender,
		GymName:          gymName,
		Now:              gymNow,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleAdminDeleteTestimonial handles DELETE /api/admin/testimonials/{id}
func handleAdminDeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if _, err := stores.TestimonialStore.GetByID(ctx, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := stores.TestimonialStore.Delete(ctx, id); err != nil {
		internalError(w, r, err)
		return
	}
	slog.Info("admin_event", "event", "testimonial_deleted", "testimonial_id", id, "admin_id", currentSession(r).AccountID)
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminUpdateTier handles PUT /api/admin/tiers/{id}
func handleAdminUpdateTier(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         *string  `json:"name"`
		MonthlyCents *int     `json:"monthly_cents"`
		Features     []string `json:"features"`
		Highlighted  *bool    `json:"highlighted"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	t, err := orchestrators.ExecuteUpdateTier(r.Context(), orchestrators.UpdateTierInput{
		TierID:       r.PathValue("id"),
		AdminID:      currentSession(r).AccountID,
		Name:         input.Name,
		MonthlyCents: input.MonthlyCents,
		Features:     input.Features,
		Highlighted:  input.Highlighted,
	}, orchestrators.UpdateTierDeps{TierStore: stores.TierStore})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tierResponse{Tier: t, Price: t.PriceLabel()})
}

// --- Performance ---

// defaultPerfWindow is how far back /api/admin/perf looks without ?window=.
const defaultPerfWindow = 15 * time.Minute

// handleAdminPerf handles GET /api/admin/perf?window=15m
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, perf.Snapshot{})
		return
	}
	window := defaultPerfWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "window must be a positive duration such as 15m")
			return
		}
		window = d
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(time.Now().Add(-window), 10))
}
