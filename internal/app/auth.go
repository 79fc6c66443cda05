package app

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"travel_booking/internal/domain"
)

// AuthService issues the bearer tokens of the demo login. Validation lives in the HTTP layer.
type AuthService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(secret, issuer, audience string, ttl time.Duration) *AuthService {
	return &AuthService{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl, now: time.Now}
}

// DemoLogin signs a token for the demo account. There are no credentials to check.
func (a *AuthService) DemoLogin() (domain.Token, domain.User, error) {
	tok, err := a.Issue(domain.DemoUser)
	if err != nil {
		return domain.Token{}, domain.User{}, err
	}
	return domain.Token{AccessToken: tok, TokenType: "bearer"}, domain.DemoUser, nil
}

func (a *AuthService) Issue(u domain.User) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		Issuer:    a.issuer,
		Audience:  jwt.ClaimStrings{a.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// User resolves the subject of a validated token.
func (a *AuthService) User(id string) (domain.User, error) {
	if id == domain.DemoUser.ID {
		return domain.DemoUser, nil
	}
	return domain.User{}, domain.ErrNotFound
}

func (a *AuthService) Secret() []byte   { return a.secret }
func (a *AuthService) Issuer() string   { return a.issuer }
func (a *AuthService) Audience() string { return a.audience }
