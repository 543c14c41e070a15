package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/petermazzocco/temple-desk/internal/auth"
	"github.com/petermazzocco/temple-desk/models"
)

// AuthHandler serves registration and login for one account class.
type AuthHandler struct {
	accounts *auth.AccountService
	class    auth.AccountClass
}

func NewAuthHandler(accounts *auth.AccountService, class auth.AccountClass) *AuthHandler {
	return &AuthHandler{accounts: accounts, class: class}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// Register handles POST /api/register and /api/admin/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		writeBodyError(w, err, "error")
		return
	}

	req := models.RegisterRequest{
		Name:     stringField(body, "name"),
		Email:    stringField(body, "email"),
		Password: stringField(body, "password"),
	}

	err = h.accounts.Register(r.Context(), h.class, req)
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "Email already registered")
	case err != nil:
		slog.Error("registration failed", "class", h.class, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
	default:
		slog.Info("account registered", "class", h.class)
		writeMessage(w, http.StatusCreated, h.registeredMessage())
	}
}

// Login handles POST /api/login and /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		writeBodyError(w, err, "error")
		return
	}

	req := models.LoginRequest{
		Email:    stringField(body, "email"),
		Password: stringField(body, "password"),
	}

	resp, err := h.accounts.Login(r.Context(), h.class, req)
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Email and password are required")
	case errors.Is(err, auth.ErrAccountNotFound):
		writeError(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid credentials")
	case err != nil:
		slog.Error("login failed", "class", h.class, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to login")
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AuthHandler) registeredMessage() string {
	if h.class == auth.Admins {
		return "Admin created successfully"
	}
	return "User registered successfully"
}
