package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-alpsconnect/internal/auth"
	"backend-alpsconnect/internal/config"
	"backend-alpsconnect/internal/domain"
	"backend-alpsconnect/internal/trip"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "secret",
		ServerPort:   ":0",
		DefaultLang:  "en",
		MockSeed:     42,
		JoinPolicy:   "reject",
		DemoPassword: "alpine",
	}
}

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	s, err := NewServer(cfg, nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func call(t *testing.T, s *Server, method, path, token string, body any) *http.Response {
	t.Helper()
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func login(t *testing.T, s *Server, email string) string {
	t.Helper()
	resp := call(t, s, http.MethodPost, "/auth/login", "", auth.LoginRequest{Email: email, Password: "alpine"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: %d", email, resp.StatusCode)
	}
	var body struct {
		Tokens auth.TokenResponse `json:"tokens"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return body.Tokens.AccessToken
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t, testConfig())

	resp := call(t, s, http.MethodGet, "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 status")
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["lang"] != "en" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestJoinAndApproveFlow(t *testing.T) {
	s := newTestServer(t, testConfig())
	clientToken := login(t, s, "rob@test.com")
	guideToken := login(t, s, "jp.luc@guidealpine.it")

	resp := call(t, s, http.MethodGet, "/trips/mine", guideToken, nil)
	var mine []domain.Trip
	_ = json.NewDecoder(resp.Body).Decode(&mine)
	if len(mine) == 0 {
		t.Fatalf("expected guide trips")
	}
	var target domain.Trip
	for _, tr := range mine {
		if tr.Status == domain.StatusUpcoming {
			target = tr
			break
		}
	}
	if target.ID == "" {
		t.Fatalf("expected an upcoming guide trip")
	}

	resp = call(t, s, http.MethodPost, "/trips/"+target.ID+"/requests", clientToken, map[string]any{
		"date":       target.Date,
		"friend_ids": []string{"friend-a", "friend-b"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("join status: %d", resp.StatusCode)
	}
	var joined trip.JoinResult
	_ = json.NewDecoder(resp.Body).Decode(&joined)
	if joined.Message != "Request sent for you and 2 friends!" {
		t.Fatalf("unexpected message %q", joined.Message)
	}

	resp = call(t, s, http.MethodPost, "/trips/"+target.ID+"/approve", guideToken, map[string]string{"client_id": "client-3"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status: %d", resp.StatusCode)
	}
	var approved domain.Trip
	_ = json.NewDecoder(resp.Body).Decode(&approved)
	enrolled := 0
	for _, c := range approved.EnrolledClients {
		if c.ID == "client-3" {
			enrolled++
		}
	}
	if enrolled != 1 {
		t.Fatalf("expected client-3 enrolled once, got %d", enrolled)
	}
	for _, c := range approved.PendingRequests {
		if c.ID == "client-3" {
			t.Fatalf("client-3 still pending")
		}
	}
}

func TestErrorsRenderAsJSON(t *testing.T) {
	s := newTestServer(t, testConfig())

	resp := call(t, s, http.MethodGet, "/trips/does-not-exist", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != trip.ErrTripNotFound.Error() {
		t.Fatalf("unexpected error body: %v", body)
	}

	resp = call(t, s, http.MethodGet, "/nowhere", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", resp.StatusCode)
	}
}

func TestLanguageSwitchThroughAPI(t *testing.T) {
	s := newTestServer(t, testConfig())

	resp := call(t, s, http.MethodPut, "/demo/language", "", map[string]string{"lang": "it"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("switch status: %d", resp.StatusCode)
	}
	resp = call(t, s, http.MethodGet, "/trips/t1", "", nil)
	var t1 domain.Trip
	_ = json.NewDecoder(resp.Body).Decode(&t1)
	if t1.ID != "t1" || s.Demo.Language() != "it" {
		t.Fatalf("unexpected state after switch: %s %s", t1.ID, s.Demo.Language())
	}
}

func TestStatsRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := testConfig()
	cfg.StatsBackend = config.StatsRedis
	s, err := NewServer(cfg, nil, rdb)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer s.Close()

	req := httptest.NewRequest(http.MethodPost, "/stats/visit", nil)
	req.Header.Set("X-Visitor-ID", "tab-1")
	if resp, err := s.App.Test(req); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("visit status: %v", err)
	}
	if got, _ := mr.Get("ac_stats_views:tab-1"); got != "1" {
		t.Fatalf("expected view stored in redis, got %q", got)
	}
}

func TestNewServerRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.JoinPolicy = "sometimes"
	if _, err := NewServer(cfg, nil, nil); err == nil {
		t.Fatalf("expected join policy error")
	}

	cfg = testConfig()
	cfg.StatsBackend = "floppy"
	if _, err := NewServer(cfg, nil, nil); err == nil {
		t.Fatalf("expected stats backend error")
	}

	cfg = testConfig()
	cfg.DefaultLang = "de"
	if _, err := NewServer(cfg, nil, nil); err == nil {
		t.Fatalf("expected language error")
	}
}

func TestStatsStoreFallsBackToMemory(t *testing.T) {
	for _, backend := range []string{config.StatsRedis, config.StatsPostgres, ""} {
		kv, err := statsStore(backend, nil, nil)
		if err != nil || kv == nil {
			t.Fatalf("%q: expected memory fallback, got %v", backend, err)
		}
	}
}

func TestFeedbackUnavailableWithoutDatabase(t *testing.T) {
	s := newTestServer(t, testConfig())
	resp := call(t, s, http.MethodPost, "/feedback", "", map[string]string{"message": "great demo"})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestFeedbackSubmissionsAreRateLimited(t *testing.T) {
	s := newTestServer(t, testConfig())
	status := 0
	for i := 0; i < 11; i++ {
		resp := call(t, s, http.MethodPost, "/feedback", "", map[string]string{"message": "again"})
		status = resp.StatusCode
	}
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the limit, got %d", status)
	}
}
