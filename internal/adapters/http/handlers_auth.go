package web

import (
	"context"
	"log/slog"
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
	accountStore "gymdesk/internal/adapters/storage/account"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/account"
)

// startSession issues a session cookie for the account.
func startSession(w http.ResponseWriter, id, email, role string) error {
	token, err := sessions.Create(id, email, role)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(w, token)
	return nil
}

// handleRegister handles POST /api/auth/register. New accounts are members and are signed in.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
		Phone       string `json:"phone"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	acct, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
	}, orchestrators.RegisterDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   generateID,
		Now:          gymNow,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := startSession(w, acct.ID, acct.Email, acct.Role); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projections.NewUserRow(acct, gymNow()))
}

// handleLogin handles POST /api/auth/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		Now:          gymNow,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := startSession(w, result.AccountID, result.Email, result.Role); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":    result.AccountID,
		"email": result.Email,
		"role":  result.Role,
	})
}

// handleLogout handles POST /api/auth/logout. It succeeds without a session too.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessions.Delete(cookie.Value)
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		slog.Info("auth_event", "event", "logout", "account_id", sess.AccountID)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleGetMe handles GET /api/me
func handleGetMe(w http.ResponseWriter, r *http.Request) {
	acct, err := stores.AccountStore.GetByID(r.Context(), currentSession(r).AccountID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projections.NewUserRow(acct, gymNow()))
}

// handleUpdateMe handles PATCH /api/me.
// Changing the password signs out every other session of the account.
func handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	var input struct {
		DisplayName     *string `json:"display_name"`
		Phone           *string `json:"phone"`
		CurrentPassword string  `json:"current_password"`
		NewPassword     string  `json:"new_password"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	acct, err := orchestrators.ExecuteUpdateProfile(r.Context(), orchestrators.UpdateProfileInput{
		AccountID:       sess.AccountID,
		DisplayName:     input.DisplayName,
		Phone:           input.Phone,
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	}, orchestrators.UpdateProfileDeps{AccountStore: stores.AccountStore})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if input.NewPassword != "" {
		sessions.DeleteByAccount(acct.ID)
		if err := startSession(w, acct.ID, acct.Email, acct.Role); err != nil {
			internalError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, projections.NewUserRow(acct, gymNow()))
}

// adminLister finds admins through the paginated account store.
type adminLister struct {
	store accountStore.Store
}

// ListAdmins returns up to listutil.MaxPerPage admin accounts.
func (l adminLister) ListAdmins(ctx context.Context) ([]account.Account, error) {
	return l.store.List(ctx, accountStore.ListFilter{Role: account.RoleAdmin, Limit: listutil.MaxPerPage})
}

// handleSubmitTestimonial handles POST /api/testimonials
func handleSubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Content string `json:"content"`
		Rating  int    `json:"rating"`
	}
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	t, err := orchestrators.ExecuteSubmitTestimonial(r.Context(), orchestrators.SubmitTestimonialInput{
		AuthorID: currentSession(r).AccountID,
		Content:  input.Content,
		Rating:   input.Rating,
	}, orchestrators.SubmitTestimonialDeps{
		AccountStore:     stores.AccountStore,
		TestimonialStore: stores.TestimonialStore,
		Admins:           adminLister{store: stores.AccountStore},
		Sender:           emailSender,
		GenerateID:       generateID,
		Now:              gymNow,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}
