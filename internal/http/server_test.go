package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"profilo/internal/config"
	"profilo/internal/core"
	"profilo/internal/intra"
	"profilo/internal/log"
	"profilo/internal/services"
	"profilo/internal/storage"
)

type fakePlatform struct {
	password string
	account  core.Account
	fetchErr error
	fetches  int
}

func (f *fakePlatform) SignIn(_ context.Context, login, password string) (string, error) {
	if password != f.password {
		return "", intra.ErrBadCredentials
	}
	return "platform-token", nil
}

func (f *fakePlatform) FetchAccount(_ context.Context, token string) (core.Account, error) {
	if f.fetchErr != nil {
		return core.Account{}, f.fetchErr
	}
	if token != "platform-token" {
		return core.Account{}, errors.New("wrong token")
	}
	f.fetches++
	return f.account, nil
}

func testAccount() core.Account {
	return core.Account{
		Login:     "alice",
		TotalUp:   1_500_000,
		TotalDown: 1_000_000,
		Transactions: []core.Transaction{
			{
				ID:        1,
				CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
				Type:      "xp",
				Amount:    800_000,
				Path:      "/johvi/div-01/go-reloaded",
				Object:    core.Subject{Name: "go-reloaded"},
			},
			{
				ID:        2,
				CreatedAt: time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC),
				Type:      "level",
				Amount:    5,
				Path:      "/johvi/div-01/go-reloaded",
				Object:    core.Subject{Name: "go-reloaded"},
			},
		},
	}
}

func newTestServer(t *testing.T, platform *fakePlatform) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:         "0",
		CacheTTL:     time.Minute,
		CacheEntries: 16,
	}
	svc := services.NewProfileService(platform, storage.NewMemoryStore(), nil, core.DefaultRules())
	logger := log.New(log.Config{Level: slog.LevelError, Component: log.ComponentHTTP})

	srv, err := NewServer(cfg, svc, logger)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { srv.limiter.Stop() })
	return srv
}

func doLogin(t *testing.T, srv *Server, identifier, password string) *http.Response {
	t.Helper()

	form := url.Values{"identifier": {identifier}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec.Result()
}

func TestLoginSuccessRedirectsWithSession(t *testing.T) {
	srv := newTestServer(t, &fakePlatform{password: "secret", account: testAccount()})

	resp := doLogin(t, srv, "alice", "secret")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("Location = %q, want /dashboard", loc)
	}

	var sessionID string
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			sessionID = c.Value
		}
	}
	if sessionID == "" {
		t.Fatal("expected a session cookie")
	}
	if _, ok := srv.sessions.Get(sessionID); !ok {
		t.Fatal("session should be stored server-side")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	srv := newTestServer(t, &fakePlatform{password: "secret"})

	resp := doLogin(t, srv, "alice", "wrong")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Invalid credentials") {
		t.Fatal("expected the login page to carry an error message")
	}
}

func TestLoginMissingFields(t *testing.T) {
	srv := newTestServer(t, &fakePlatform{password: "secret"})

	resp := doLogin(t, srv, "", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	srv := newTestServer(t, &fakePlatform{password: "secret"})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("Location = %q, want /", loc)
	}
}

func TestDashboardRendersProfile(t *testing.T) {
	platform := &fakePlatform{password: "secret", account: testAccount()}
	srv := newTestServer(t, platform)

	login := doLogin(t, srv, "alice", "secret")
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range login.Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Welcome back, alice", "0.80 MB", "<svg", "go-reloaded"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard body missing %q", want)
		}
	}
}

func TestDashboardServedFromCacheWhenPlatformDown(t *testing.T) {
	platform := &fakePlatform{password: "secret", account: testAccount()}
	srv := newTestServer(t, platform)

	login := doLogin(t, srv, "alice", "secret")
	platform.fetchErr = errors.New("platform down")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range login.Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 from cache", rec.Code)
	}
}

func TestAPIDashboardJSON(t *testing.T) {
	platform := &fakePlatform{password: "secret", account: testAccount()}
	srv := newTestServer(t, platform)

	login := doLogin(t, srv, "alice", "secret")
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	for _, c := range login.Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), `"login":"alice"`) {
		t.Fatal("expected login in JSON payload")
	}
}

func TestAPIDashboardUnauthenticated(t *testing.T) {
	srv := newTestServer(t, &fakePlatform{password: "secret"})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	platform := &fakePlatform{password: "secret", account: testAccount()}
	srv := newTestServer(t, platform)

	login := doLogin(t, srv, "alice", "secret")
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	for _, c := range login.Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	after := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range login.Cookies() {
		after.AddCookie(c)
	}
	afterRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(afterRec, after)
	if afterRec.Code != http.StatusSeeOther {
		t.Fatal("session should be gone after logout")
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &fakePlatform{password: "secret"})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newTestServer(t, &fakePlatform{password: "secret"})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q, want DENY", got)
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Fatal("expected a Content-Security-Policy header")
	}
}
