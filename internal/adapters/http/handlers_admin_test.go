package web

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"gymdesk/internal/adapters/http/perf"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/closure"
	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/testimonial"
	"gymdesk/internal/domain/tier"
	"gymdesk/internal/domain/trainer"
)

// TestAdminRoutes_RequireAdmin rejects anonymous callers and non-admins.
func TestAdminRoutes_RequireAdmin(t *testing.T) {
	app := newTestApp(t)
	member := app.addAccount(t, "mia", "member")
	coach := app.addAccount(t, "kim", "trainer")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"anonymous users", "GET", "/api/admin/users", "", http.StatusUnauthorized},
		{"member users", "GET", "/api/admin/users", member, http.StatusForbidden},
		{"trainer perf", "GET", "/api/admin/perf", coach, http.StatusForbidden},
		{"member ban", "POST", "/api/admin/users/kim/ban", member, http.StatusForbidden},
		{"member trainer route", "PATCH", "/api/trainer/profile", member, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, app.do(t, tt.method, tt.path, map[string]string{}, tt.token), tt.want)
		})
	}
}

// TestAdminListUsers pages and filters accounts.
func TestAdminListUsers(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")
	app.addAccount(t, "mia", "member")
	app.addAccount(t, "max", "member")
	app.addAccount(t, "kim", "trainer")

	rec := app.do(t, "GET", "/api/admin/users?role=member&per_page=1&sort=email", nil, admin)
	expectStatus(t, rec, http.StatusOK)
	result := decode[projections.UserListResult](t, rec)
	if result.Page.Total != 2 || len(result.Users) != 1 || result.Users[0].Email != "max@gym.test" || !result.Page.HasNext {
		t.Errorf("result = %+v", result)
	}
}

// TestAdminBanUnban bans a member, ends their sessions and emails them.
func TestAdminBanUnban(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")
	member := app.addAccount(t, "mia", "member")

	rec := app.do(t, "POST", "/api/admin/users/mia/ban", map[string]string{"reason": "Unpaid fees"}, admin)
	expectStatus(t, rec, http.StatusOK)
	if row := decode[projections.UserRow](t, rec); !row.Banned || row.BanReason != "Unpaid fees" {
		t.Errorf("banned row = %+v", row)
	}
	expectStatus(t, app.do(t, "GET", "/api/me", nil, member), http.StatusUnauthorized)
	if sent := app.sender.Sent(); len(sent) != 1 || sent[0].To[0] != "mia@gym.test" {
		t.Errorf("sent = %+v", sent)
	}

	expectStatus(t, app.do(t, "POST", "/api/admin/users/mia/ban", map[string]string{"reason": "again"}, admin), http.StatusConflict)
	expectStatus(t, app.do(t, "POST", "/api/admin/users/boss/ban", map[string]string{"reason": "oops"}, admin), http.StatusForbidden)
	expectStatus(t, app.do(t, "POST", "/api/admin/users/ghost/ban", map[string]string{"reason": "who"}, admin), http.StatusNotFound)

	expectStatus(t, app.do(t, "POST", "/api/admin/users/mia/unban", nil, admin), http.StatusOK)
	expectStatus(t, app.do(t, "POST", "/api/admin/users/mia/unban", nil, admin), http.StatusConflict)
}

// TestAdminChangeRole promotes a member to trainer and creates their profile.
func TestAdminChangeRole(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")
	old := app.addAccount(t, "kim", "member")

	rec := app.do(t, "PUT", "/api/admin/users/kim/role", map[string]string{"role": "trainer"}, admin)
	expectStatus(t, rec, http.StatusOK)
	if _, err := app.stores.TrainerStore.GetByAccountID(context.Background(), "kim"); err != nil {
		t.Errorf("trainer profile not created: %v", err)
	}
	expectStatus(t, app.do(t, "GET", "/api/me", nil, old), http.StatusUnauthorized)

	expectStatus(t, app.do(t, "PUT", "/api/admin/users/kim/role", map[string]string{"role": "owner"}, admin), http.StatusBadRequest)
	expectStatus(t, app.do(t, "PUT", "/api/admin/users/boss/role", map[string]string{"role": "member"}, admin), http.StatusForbidden)
}

// TestAdminClasses creates, updates and deletes a class.
func TestAdminClasses(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")
	class := map[string]string{"module_name": "Yoga", "day": "Monday", "start_time": "09:00", "end_time": "10:00"}

	rec := app.do(t, "POST", "/api/admin/classes", class, admin)
	expectStatus(t, rec, http.StatusCreated)
	created := decode[schedule.Schedule](t, rec)
	if created.ID == "" || created.Day != schedule.Monday {
		t.Fatalf("created = %+v", created)
	}

	class["room"] = "Studio 2"
	rec = app.do(t, "PUT", "/api/admin/classes/"+created.ID, class, admin)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[schedule.Schedule](t, rec); got.Room != "Studio 2" || got.ID != created.ID {
		t.Errorf("updated = %+v", got)
	}

	tests := []struct {
		name string
		path string
		body map[string]string
		want int
	}{
		{"end before start", "/api/admin/classes", map[string]string{"module_name": "Spin", "day": "monday", "start_time": "10:00", "end_time": "09:00"}, http.StatusBadRequest},
		{"malformed time", "/api/admin/classes", map[string]string{"module_name": "Spin", "day": "monday", "start_time": "9am", "end_time": "10:00"}, http.StatusBadRequest},
		{"unknown trainer", "/api/admin/classes", map[string]string{"module_name": "Spin", "day": "monday", "start_time": "09:00", "end_time": "10:00", "trainer_id": "nobody"}, http.StatusBadRequest},
		{"unknown field", "/api/admin/classes", map[string]string{"module_name": "Spin", "colour": "red"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, app.do(t, "POST", tt.path, tt.body, admin), tt.want)
		})
	}
	expectStatus(t, app.do(t, "PUT", "/api/admin/classes/missing", class, admin), http.StatusNotFound)

	expectStatus(t, app.do(t, "DELETE", "/api/admin/classes/"+created.ID, nil, admin), http.StatusNoContent)
	expectStatus(t, app.do(t, "DELETE", "/api/admin/classes/"+created.ID, nil, admin), http.StatusNotFound)
}

// TestAdminClosures adds, lists and removes a closure.
func TestAdminClosures(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")

	rec := app.do(t, "POST", "/api/admin/closures", map[string]string{"reason": "Easter", "start_date": "2026-04-03", "end_date": "2026-04-06"}, admin)
	expectStatus(t, rec, http.StatusCreated)
	c := decode[closure.Closure](t, rec)

	if list := decode[[]closure.Closure](t, app.do(t, "GET", "/api/admin/closures", nil, admin)); len(list) != 1 {
		t.Errorf("closures = %+v", list)
	}
	expectStatus(t, app.do(t, "POST", "/api/admin/closures", map[string]string{"reason": "Bad", "start_date": "04/03/2026", "end_date": "2026-04-06"}, admin), http.StatusBadRequest)
	expectStatus(t, app.do(t, "POST", "/api/admin/closures", map[string]string{"reason": "Backwards", "start_date": "2026-04-06", "end_date": "2026-04-03"}, admin), http.StatusBadRequest)

	expectStatus(t, app.do(t, "DELETE", "/api/admin/closures/"+c.ID, nil, admin), http.StatusNoContent)
	expectStatus(t, app.do(t, "DELETE", "/api/admin/closures/"+c.ID, nil, admin), http.StatusNotFound)
}

// TestAdminUpdatePage renders Markdown and drops raw HTML.
func TestAdminUpdatePage(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")

	body := map[string]string{"title": "Our mission", "body": "We **lift** together.\n\n<script>alert(1)</script>"}
	rec := app.do(t, "PUT", "/api/admin/pages/our-mission", body, admin)
	expectStatus(t, rec, http.StatusOK)

	p := decode[pageResponse](t, app.do(t, "GET", "/api/pages/our-mission", nil, ""))
	if !strings.Contains(p.HTML, "<strong>lift</strong>") || strings.Contains(p.HTML, "<script>") {
		t.Errorf("html = %q", p.HTML)
	}
	if p.UpdatedBy != "boss" {
		t.Errorf("UpdatedBy = %q, want boss", p.UpdatedBy)
	}

	expectStatus(t, app.do(t, "PUT", "/api/admin/pages/careers", body, admin), http.StatusBadRequest)
}

// TestAdminModerateTestimonial approves a pending testimonial once.
func TestAdminModerateTestimonial(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")
	app.addAccount(t, "mia", "member")
	pending := testimonial.Testimonial{ID: "t1", AuthorID: "mia", AuthorName: "Mia", Content: "Love it", Rating: 5, Status: testimonial.StatusPending, CreatedAt: mondayMorning}
	if err := app.stores.TestimonialStore.Save(context.Background(), pending); err != nil {
		t.Fatal(err)
	}

	if list := decode[[]testimonial.Testimonial](t, app.do(t, "GET", "/api/admin/testimonials?status=pending", nil, admin)); len(list) != 1 {
		t.Errorf("pending = %+v", list)
	}
	expectStatus(t, app.do(t, "GET", "/api/admin/testimonials?status=lost", nil, admin), http.StatusBadRequest)
	expectStatus(t, app.do(t, "POST", "/api/admin/testimonials/t1/maybe", nil, admin), http.StatusBadRequest)

	rec := app.do(t, "POST", "/api/admin/testimonials/t1/approve", nil, admin)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[testimonial.Testimonial](t, rec); got.Status != testimonial.StatusApproved || got.ModeratedBy != "boss" {
		t.Errorf("approved = %+v", got)
	}
	if public := decode[[]testimonial.Testimonial](t, app.do(t, "GET", "/api/testimonials", nil, "")); len(public) != 1 {
		t.Errorf("public = %+v", public)
	}
	expectStatus(t, app.do(t, "POST", "/api/admin/testimonials/t1/reject", nil, admin), http.StatusConflict)

	expectStatus(t, app.do(t, "DELETE", "/api/admin/testimonials/t1", nil, admin), http.StatusNoContent)
	expectStatus(t, app.do(t, "DELETE", "/api/admin/testimonials/t1", nil, admin), http.StatusNotFound)
}

// TestAdminUpdateTier changes a price and rejects negative ones.
func TestAdminUpdateTier(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")
	if err := app.stores.TierStore.Save(context.Background(), tier.Tier{ID: "basic", Name: "Basic", MonthlyCents: 2900}); err != nil {
		t.Fatal(err)
	}

	rec := app.do(t, "PUT", "/api/admin/tiers/basic", map[string]int{"monthly_cents": 3400}, admin)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[tierResponse](t, rec); got.MonthlyCents != 3400 {
		t.Errorf("tier = %+v", got)
	}
	expectStatus(t, app.do(t, "PUT", "/api/admin/tiers/basic", map[string]int{"monthly_cents": -1}, admin), http.StatusBadRequest)
	expectStatus(t, app.do(t, "PUT", "/api/admin/tiers/gold", map[string]int{"monthly_cents": 1}, admin), http.StatusNotFound)
}

// TestTrainerSelfService edits a profile, adds awards and caps favorites.
func TestTrainerSelfService(t *testing.T) {
	app := newTestApp(t)
	coach := app.addAccount(t, "kim", "trainer")
	if err := app.stores.TrainerStore.Save(context.Background(), trainer.Trainer{ID: "t-kim", AccountID: "kim", Name: "Kim", UpdatedAt: mondayMorning}); err != nil {
		t.Fatal(err)
	}

	rec := app.do(t, "PATCH", "/api/trainer/profile", map[string]any{"bio": "Coach", "specialties": []string{"boxing", "Boxing", "HIIT"}}, coach)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[trainer.Trainer](t, rec); len(got.Specialties) != 2 {
		t.Errorf("specialties = %v", got.Specialties)
	}
	expectStatus(t, app.do(t, "PATCH", "/api/trainer/profile", map[string]any{"photo_url": "http://insecure"}, coach), http.StatusBadRequest)

	var ids []string
	for _, title := range []string{"A", "B", "C", "D"} {
		rec := app.do(t, "POST", "/api/trainer/awards", map[string]any{"title": title, "year": 2024}, coach)
		expectStatus(t, rec, http.StatusCreated)
		ids = append(ids, decode[trainer.Award](t, rec).ID)
	}
	for _, id := range ids[:3] {
		expectStatus(t, app.do(t, "PATCH", "/api/trainer/awards/"+id+"/favorite", nil, coach), http.StatusOK)
	}
	expectStatus(t, app.do(t, "PATCH", "/api/trainer/awards/"+ids[3]+"/favorite", nil, coach), http.StatusConflict)
	expectStatus(t, app.do(t, "PATCH", "/api/trainer/awards/unknown/favorite", nil, coach), http.StatusNotFound)

	profile := decode[projections.TrainerProfile](t, app.do(t, "GET", "/api/trainer/profile", nil, coach))
	if len(profile.Awards) != 4 || len(profile.Favorites) != 3 {
		t.Errorf("profile = %+v", profile)
	}
}

// TestAdminPerf reports the requests recorded by the timing middleware.
func TestAdminPerf(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")
	app.do(t, "GET", "/api/classes", nil, "")

	rec := app.do(t, "GET", "/api/admin/perf?window=1h", nil, admin)
	expectStatus(t, rec, http.StatusOK)
	if snap := decode[perf.Snapshot](t, rec); snap.Requests == 0 {
		t.Errorf("snapshot = %+v", snap)
	}
	expectStatus(t, app.do(t, "GET", "/api/admin/perf?window=soon", nil, admin), http.StatusBadRequest)
}
