package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/http/perf"
	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/application/ticker"
	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/schedule"
)

// Monday 2026-03-09 09:30 UTC
var mondayMorning = time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC)

type testApp struct {
	handler http.Handler
	stores  *Stores
	clock   *clock.Fake
	ticker  *ticker.Ticker
	sender  *email.NoopSender
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := &testApp{
		stores: NewSQLiteStores(db),
		clock:  clock.NewFake(mondayMorning),
		sender: email.NewNoopSender(),
	}
	// The ticker is never Run; tests publish instants by hand.
	app.ticker = ticker.New(app.clock, time.Hour)
	app.handler, err = NewMux(ctx, app.stores, Options{
		Collector:          perf.NewCollector(100),
		Clock:              app.clock,
		Ticker:             app.ticker,
		CSRFKey:            bytes.Repeat([]byte{7}, 32),
		GymName:            "Test Gym",
		Sender:             app.sender,
		RateLimitPerSecond: 10000,
	})
	if err != nil {
		t.Fatalf("NewMux: %v", err)
	}
	return app
}

// addAccount stores an account without a password and returns a session token for it.
func (a *testApp) addAccount(t *testing.T, id, role string) string {
	t.Helper()
	acct := account.Account{ID: id, Email: id + "@gym.test", Role: role, DisplayName: strings.ToUpper(id[:1]) + id[1:], CreatedAt: mondayMorning}
	if err := a.stores.AccountStore.Save(context.Background(), acct); err != nil {
		t.Fatalf("save account: %v", err)
	}
	token, err := sessions.Create(acct.ID, acct.Email, acct.Role)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return token
}

func (a *testApp) addClass(t *testing.T, s schedule.Schedule) {
	t.Helper()
	if err := a.stores.ScheduleStore.Save(context.Background(), s); err != nil {
		t.Fatalf("save class: %v", err)
	}
}

func (a *testApp) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func sessionCookie(rec *httptest.ResponseRecorder) string {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Value
		}
	}
	return ""
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

// TestResolveCSRFKey covers configured, missing and malformed keys.
func TestResolveCSRFKey(t *testing.T) {
	valid := strings.Repeat("ab", 32)
	tests := []struct {
		name       string
		keyHex     string
		production bool
		wantErr    error
	}{
		{"configured", valid, true, nil},
		{"random in development", "", false, nil},
		{"missing in production", "", true, ErrCSRFKeyRequired},
		{"not hex", strings.Repeat("zz", 32), false, ErrInvalidCSRFKey},
		{"too short", "abcd", false, ErrInvalidCSRFKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ResolveCSRFKey(tt.keyHex, tt.production)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && len(key) != 32 {
				t.Errorf("len(key) = %d, want 32", len(key))
			}
		})
	}
}

// TestHealthz verifies the liveness endpoint and the security headers on every response.
func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, "GET", "/healthz", nil, "")
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("missing security headers: %v", rec.Header())
	}
	body := decode[map[string]any](t, rec)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

// bare sends a request with no body and no Content-Type, the way fetch does for DELETE or an empty POST.
func (a *testApp) bare(t *testing.T, method, path string, cookies []*http.Cookie, csrfToken string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if csrfToken != "" {
		req.Header.Set(middleware.CSRFHeader, csrfToken)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// TestBodylessRequests_CSRFToken checks that body-less unsafe requests are refused with a
// JSON error until they echo the token issued on a GET, and then succeed.
func TestBodylessRequests_CSRFToken(t *testing.T) {
	app := newTestApp(t)
	admin := app.addAccount(t, "boss", "admin")
	app.addClass(t, schedule.Schedule{ID: "c1", ModuleName: "Yoga", Day: schedule.Monday, StartTime: "09:00", EndTime: "10:00"})
	session := &http.Cookie{Name: middleware.SessionCookieName, Value: admin}

	rec := app.bare(t, "DELETE", "/api/admin/classes/c1", []*http.Cookie{session}, "")
	expectStatus(t, rec, http.StatusForbidden)
	if body := decode[map[string]string](t, rec); body["error"] == "" {
		t.Errorf("rejection body = %v", body)
	}

	rec = app.bare(t, "GET", "/api/me", []*http.Cookie{session}, "")
	expectStatus(t, rec, http.StatusOK)
	token := rec.Header().Get(middleware.CSRFHeader)
	if token == "" {
		t.Fatal("no csrf token issued on GET")
	}
	cookies := append(rec.Result().Cookies(), session)

	expectStatus(t, app.bare(t, "DELETE", "/api/admin/classes/c1", cookies, token), http.StatusNoContent)
	expectStatus(t, app.bare(t, "POST", "/api/admin/users/boss/unban", cookies, token), http.StatusConflict)
	expectStatus(t, app.bare(t, "POST", "/api/auth/logout", cookies, token), http.StatusNoContent)
	expectStatus(t, app.do(t, "GET", "/api/me", nil, admin), http.StatusUnauthorized)
}
