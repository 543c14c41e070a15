package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petermazzocco/temple-desk/internal/auth"
	"github.com/petermazzocco/temple-desk/internal/store"
)

func newTestAuth() (users, admins *AuthHandler, tokens *auth.TokenIssuer) {
	tokens = auth.NewTokenIssuer("handler-test-secret")
	accounts := auth.NewAccountService(store.NewMemory(), tokens)
	return NewAuthHandler(accounts, auth.Users), NewAuthHandler(accounts, auth.Admins), tokens
}

var priya = map[string]string{"name": "Priya", "email": "priya@example.com", "password": "lotus123"}

func TestAuthHandlerRegister(t *testing.T) {
	users, admins, _ := newTestAuth()

	tests := []struct {
		name       string
		h          *AuthHandler
		body       map[string]string
		wantStatus int
		wantKey    string
		wantText   string
	}{
		{"user", users, priya, http.StatusCreated, "message", "User registered successfully"},
		{"duplicate user", users, priya, http.StatusBadRequest, "error", "Email already registered"},
		{"same email as admin", admins, priya, http.StatusCreated, "message", "Admin created successfully"},
		{"duplicate admin", admins, priya, http.StatusBadRequest, "error", "Email already registered"},
		{"missing password", users, map[string]string{"name": "X", "email": "x@example.com"}, http.StatusBadRequest, "error", "All fields are required"},
		{"empty name", admins, map[string]string{"name": "", "email": "y@example.com", "password": "p"}, http.StatusBadRequest, "error", "All fields are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.h.Register, jsonRequest(t, "/api/register", tt.body))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body)
			}
			if got := decodeBody[map[string]string](t, w)[tt.wantKey]; got != tt.wantText {
				t.Errorf("%s = %q, want %q", tt.wantKey, got, tt.wantText)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	users, admins, tokens := newTestAuth()

	if w := serve(users.Register, jsonRequest(t, "/api/register", priya)); w.Code != http.StatusCreated {
		t.Fatalf("Register status = %d", w.Code)
	}

	w := serve(users.Login, jsonRequest(t, "/api/login", map[string]string{
		"email": priya["email"], "password": priya["password"],
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("Login status = %d, want %d: %s", w.Code, http.StatusOK, w.Body)
	}
	resp := decodeBody[map[string]string](t, w)
	if resp["name"] != "Priya" || resp["userId"] == "" {
		t.Errorf("Login response = %v", resp)
	}
	claims, err := tokens.Parse(resp["token"])
	if err != nil {
		t.Fatalf("Parse(token) error = %v", err)
	}
	if claims.UserID != resp["userId"] {
		t.Errorf("token userId = %q, want %q", claims.UserID, resp["userId"])
	}

	// A user account does not grant admin access.
	w = serve(admins.Login, jsonRequest(t, "/api/admin/login", map[string]string{
		"email": priya["email"], "password": priya["password"],
	}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("admin Login status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	users, _, _ := newTestAuth()
	serve(users.Register, jsonRequest(t, "/api/register", priya))

	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"wrong password", map[string]string{"email": priya["email"], "password": "nope"}, "Invalid credentials"},
		{"unknown email", map[string]string{"email": "ghost@example.com", "password": "x"}, "User not found"},
		{"missing password", map[string]string{"email": priya["email"]}, "Email and password are required"},
		{"missing email", map[string]string{"password": "x"}, "Email and password are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(users.Login, jsonRequest(t, "/api/login", tt.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			resp := decodeBody[map[string]string](t, w)
			if resp["error"] != tt.want {
				t.Errorf("error = %q, want %q", resp["error"], tt.want)
			}
			if _, ok := resp["token"]; ok {
				t.Error("failed login returned a token")
			}
		})
	}
}

func TestAuthHandlerInvalidBody(t *testing.T) {
	users, _, _ := newTestAuth()

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := serve(users.Login, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
