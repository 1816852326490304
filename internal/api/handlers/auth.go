package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/aviksec/notes-vault/internal/api/middleware"
	"github.com/aviksec/notes-vault/internal/config"
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Theme    string `json:"theme"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	CSRFToken string       `json:"csrfToken"`
}

// CSRFToken hands out the pre-session token the login and register forms
// must echo back in the X-CSRF-Token header.
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.authService.PreSessionCSRF()
	if err != nil {
		log.Printf("ERROR [handlers.Auth] failed to issue csrf token: %v", err)
		http.Error(w, "An error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"csrfToken": token})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case domain.IsValidation(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrUsernameTaken):
			http.Error(w, "Username already exists", http.StatusConflict)
		case errors.Is(err, domain.ErrEmailTaken):
			http.Error(w, "Email already registered", http.StatusConflict)
		default:
			log.Printf("ERROR [handlers.Auth] register failed: %v", err)
			http.Error(w, "An error occurred. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toUserResponse(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			http.Error(w, "Too many failed login attempts. Please try again later.", http.StatusTooManyRequests)
		case errors.Is(err, domain.ErrInvalidCredentials):
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		default:
			log.Printf("ERROR [handlers.Auth] login failed: %v", err)
			http.Error(w, "An error occurred. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Session.Token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTimeout.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	resp := LoginResponse{
		User:      toUserResponse(result.User),
		CSRFToken: result.Session.CSRFToken,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(middleware.CSRFHeader, result.Session.CSRFToken)
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			log.Printf("ERROR [handlers.Auth] logout failed: %v", err)
			http.Error(w, "An error occurred. Please try again later.", http.StatusInternalServerError)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	resp := UserResponse{
		ID:       identity.UserID.String(),
		Username: identity.Username,
		Email:    identity.Email,
		Theme:    identity.Theme,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Theme:    user.Theme,
	}
}
