package web

import (
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/domain/account"
)

// registerRoutes mounts every API endpoint on mux.
func registerRoutes(mux *http.ServeMux) {
	user := middleware.RequireAuth
	trainerOnly := middleware.RequireRole(account.RoleTrainer)
	admin := middleware.RequireRole(account.RoleAdmin)

	// Public
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /api/classes", handleWeeklyClasses)
	mux.HandleFunc("GET /api/classes/board", handleClassBoard)
	mux.HandleFunc("GET /api/classes/board/stream", handleClassBoardStream)
	mux.HandleFunc("GET /api/trainers", handleListTrainers)
	mux.HandleFunc("GET /api/trainers/{id}", handleGetTrainer)
	mux.HandleFunc("GET /api/pages/{slug}", handleGetPage)
	mux.HandleFunc("GET /api/testimonials", handleListTestimonials)
	mux.HandleFunc("GET /api/tiers", handleListTiers)

	// Auth
	mux.HandleFunc("POST /api/auth/register", handleRegister)
	mux.HandleFunc("POST /api/auth/login", handleLogin)
	mux.HandleFunc("POST /api/auth/logout", handleLogout)

	// Signed-in users
	mux.Handle("GET /api/me", user(http.HandlerFunc(handleGetMe)))
	mux.Handle("PATCH /api/me", user(http.HandlerFunc(handleUpdateMe)))
	mux.Handle("POST /api/testimonials", user(http.HandlerFunc(handleSubmitTestimonial)))

	// Trainers
	mux.Handle("GET /api/trainer/profile", trainerOnly(http.HandlerFunc(handleGetOwnTrainerProfile)))
	mux.Handle("PATCH /api/trainer/profile", trainerOnly(http.HandlerFunc(handleUpdateTrainerProfile)))
	mux.Handle("POST /api/trainer/awards", trainerOnly(http.HandlerFunc(handleAddAward)))
	mux.Handle("PATCH /api/trainer/awards/{id}/favorite", trainerOnly(http.HandlerFunc(handleToggleFavoriteAward)))

	// Admin
	mux.Handle("GET /api/admin/users", admin(http.HandlerFunc(handleAdminListUsers)))
	mux.Handle("POST /api/admin/users/{id}/ban", admin(http.HandlerFunc(handleAdminBan)))
	mux.Handle("POST /api/admin/users/{id}/unban", admin(http.HandlerFunc(handleAdminUnban)))
	mux.Handle("PUT /api/admin/users/{id}/role", admin(http.HandlerFunc(handleAdminChangeRole)))
	mux.Handle("POST /api/admin/classes", admin(http.HandlerFunc(handleAdminSaveClass)))
	mux.Handle("PUT /api/admin/classes/{id}", admin(http.HandlerFunc(handleAdminSaveClass)))
	mux.Handle("DELETE /api/admin/classes/{id}", admin(http.HandlerFunc(handleAdminDeleteClass)))
	mux.Handle("GET /api/admin/closures", admin(http.HandlerFunc(handleAdminListClosures)))
	mux.Handle("POST /api/admin/closures", admin(http.HandlerFunc(handleAdminAddClosure)))
	mux.Handle("DELETE /api/admin/closures/{id}", admin(http.HandlerFunc(handleAdminDeleteClosure)))
	mux.Handle("PUT /api/admin/pages/{slug}", admin(http.HandlerFunc(handleAdminUpdatePage)))
	mux.Handle("GET /api/admin/testimonials", admin(http.HandlerFunc(handleAdminListTestimonials)))
	mux.Handle("POST /api/admin/testimonials/{id}/{decision}", admin(http.HandlerFunc(handleAdminModerateTestimonial)))
	mux.Handle("DELETE /api/admin/testimonials/{id}", admin(http.HandlerFunc(handleAdminDeleteTestimonial)))
	mux.Handle("PUT /api/admin/tiers/{id}", admin(http.HandlerFunc(handleAdminUpdateTier)))
	mux.Handle("GET /api/admin/perf", admin(http.HandlerFunc(handleAdminPerf)))
}
