// Package auth covers credential login, JWT issuing and OAuth sign-in.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/config"
	"matchday-backend/internal/models"
)

const issuerName = "matchday-backend"

// Claims is the token payload. Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Plan  string `json:"plan"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenIssuer signs and verifies access and refresh tokens with HS256.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	clock         clockwork.Clock
}

func NewTokenIssuer(cfg config.Config) *TokenIssuer {
	return newTokenIssuer(cfg, clockwork.NewRealClock())
}

func newTokenIssuer(cfg config.Config, clock clockwork.Clock) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.JWTSecret),
		refreshSecret: []byte(cfg.RefreshSecret()),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		clock:         clock,
	}
}

// Issue creates an access/refresh pair for the user. Both tokens carry
// the same claims; only lifetime and signing secret differ.
func (t *TokenIssuer) Issue(u *models.User) (TokenPair, error) {
	access, err := t.sign(u, t.accessSecret, t.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.sign(u, t.refreshSecret, t.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (t *TokenIssuer) sign(u *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := t.clock.Now()
	claims := Claims{
		Email: u.Email,
		Role:  string(u.Role),
		Plan:  string(u.Plan),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    issuerName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (t *TokenIssuer) ParseAccess(token string) (*Claims, error) {
	return t.parse(token, t.accessSecret)
}

func (t *TokenIssuer) ParseRefresh(token string) (*Claims, error) {
	return t.parse(token, t.refreshSecret)
}

func (t *TokenIssuer) parse(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthorized, apperr.CodeInvalidToken, err)
	}
	return claims, nil
}
