package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

const DefaultTokenTTL = time.Hour

// claims the service adds on issue and strips on verify
const (
	claimIssuedAt  = "iat"
	claimExpiresAt = "exp"
)

// TokenService signs caller-supplied identity payloads as HS256 JWTs.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock swaps the time source; used to test expiry.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) Issue(payload map[string]any) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims[claimIssuedAt] = now.Unix()
	claims[claimExpiresAt] = now.Add(s.ttl).Unix()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tok, nil
}

// Verify checks signature and expiry and returns the payload as issued.
func (s *TokenService) Verify(token string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	delete(claims, claimIssuedAt)
	delete(claims, claimExpiresAt)
	return map[string]any(claims), nil
}

// IdentityEmail returns the payload's email, or "" if it has none.
func IdentityEmail(payload map[string]any) string {
	email, _ := payload["email"].(string)
	return email
}
