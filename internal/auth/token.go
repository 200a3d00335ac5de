package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Signer issues and checks HS256 tokens carried in cookies.
type Signer struct {
	key []byte
	now func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{key: []byte(secret), now: time.Now}
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

type flashClaims struct {
	Messages []string `json:"msgs"`
	jwt.RegisteredClaims
}

// SignSession binds a session id to an absolute expiry.
func (s *Signer) SignSession(sessionID string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}}
	return s.sign(claims)
}

// ParseSession returns the session id of a valid, unexpired token.
func (s *Signer) ParseSession(token string) (string, error) {
	var claims sessionClaims
	if err := s.parse(token, &claims); err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

// SignFlashes packs one-shot messages for the next rendered page.
func (s *Signer) SignFlashes(msgs []string, ttl time.Duration) (string, error) {
	claims := flashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
		},
	}
	return s.sign(claims)
}

func (s *Signer) ParseFlashes(token string) ([]string, error) {
	var claims flashClaims
	if err := s.parse(token, &claims); err != nil {
		return nil, err
	}
	return claims.Messages, nil
}

func (s *Signer) sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Signer) parse(token string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
