package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func TestAuthHandlersLoginRefreshVerify(t *testing.T) {
	svc := newTestService(t, nil)
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc)

	resp := postJSON(t, app, "/auth/login", LoginRequest{Email: "jp.luc@guidealpine.it", Password: "demo-pass"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %d", resp.StatusCode)
	}
	var login struct {
		Account Account       `json:"account"`
		Tokens  TokenResponse `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Account.Role != RoleGuide || login.Tokens.AccessToken == "" {
		t.Fatalf("unexpected login response: %+v", login)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer "+login.Tokens.AccessToken)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status: %v", err)
	}
	var verified map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&verified)
	if verified["user_id"] != "g1" || verified["role"] != RoleGuide {
		t.Fatalf("unexpected verify body: %v", verified)
	}

	resp = postJSON(t, app, "/auth/refresh", RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status: %d", resp.StatusCode)
	}
	resp = postJSON(t, app, "/auth/refresh", RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected reused refresh token to be rejected, got %d", resp.StatusCode)
	}
}

func TestAuthLoginBadPayload(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret", nil, nil))

	resp := postJSON(t, app, "/auth/login", map[string]string{"email": "not-an-email", "password": "x"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), newTestService(t, nil))

	resp := postJSON(t, app, "/auth/login", LoginRequest{Email: "marco@test.com", Password: "nope"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}
}

func TestAuthRefreshInvalidToken(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("test-secret", nil, nil))

	resp := postJSON(t, app, "/auth/refresh", RefreshRequest{RefreshToken: "bad"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}
	resp = postJSON(t, app, "/auth/refresh", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestAuthVerifyMissingToken(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("test-secret", nil, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}
}
