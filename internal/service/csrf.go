package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/aviksec/notes-vault/internal/config"
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const preSessionTokenTTL = time.Hour

// CSRFGuard verifies the per-session anti-forgery token and issues the
// short-lived signed tokens that cover login and register, where no
// server-side session exists yet.
type CSRFGuard struct {
	secret []byte
	now    func() time.Time
}

func NewCSRFGuard(cfg *config.Config) *CSRFGuard {
	return &CSRFGuard{
		secret: []byte(cfg.SessionSecret),
		now:    time.Now,
	}
}

// VerifySession reports whether supplied matches the session's token.
// Fails closed: a missing or empty token never verifies.
func (g *CSRFGuard) VerifySession(session *domain.Session, supplied string) bool {
	if session == nil || session.CSRFToken == "" || supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(session.CSRFToken), []byte(supplied)) == 1
}

// IssuePreSession returns a stateless HS256-signed token for the
// anonymous login/register forms.
func (g *CSRFGuard) IssuePreSession() (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"purpose": "csrf",
		"jti":     uuid.New().String(),
		"iat":     now.Unix(),
		"exp":     now.Add(preSessionTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// VerifyPreSession checks signature, expiry and purpose of a pre-session
// token. Any parse failure yields false.
func (g *CSRFGuard) VerifyPreSession(supplied string) bool {
	if supplied == "" {
		return false
	}

	token, err := jwt.Parse(supplied, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return g.now() }))
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	purpose, _ := claims["purpose"].(string)
	return purpose == "csrf"
}
