package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/service"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"

	// SessionCookie carries the opaque session token; the CSRF token
	// travels separately so the two can never be conflated.
	SessionCookie = "vault_session"
	CSRFHeader    = "X-CSRF-Token"
)

// Auth authorizes every request behind it: session always, CSRF token
// additionally for any method that can change state. The resolved
// Identity is placed on the request context.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionToken string
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				sessionToken = cookie.Value
			}
			csrfToken := r.Header.Get(CSRFHeader)

			identity, err := authService.Authorize(r.Context(), sessionToken, csrfToken, !isSafeMethod(r.Method))
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthenticated):
					clearSessionCookie(w)
					http.Error(w, "Authentication required", http.StatusUnauthorized)
				case errors.Is(err, domain.ErrCSRFInvalid):
					http.Error(w, "Invalid security token", http.StatusForbidden)
				default:
					log.Printf("ERROR [middleware.Auth] authorize failed: %v", err)
					http.Error(w, "An error occurred. Please try again later.", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PreSessionCSRF protects login and register, which run before any
// session exists, with the stateless signed token.
func PreSessionCSRF(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.VerifyPreSessionCSRF(r.Context(), r.Header.Get(CSRFHeader)) {
				http.Error(w, "Invalid security token", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity returns the authorized identity set by Auth.
func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*domain.Identity)
	return identity, ok
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
