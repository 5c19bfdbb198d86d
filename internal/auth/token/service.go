// Package token issues and verifies the stateless session tokens that carry a
// caller's username.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/messenger/backend/internal/common/clock"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/observability/metrics"
)

const usernameClaim = "username"

type Service struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewService signs with HS256 under secret. A zero ttl issues tokens without
// an expiry claim.
func NewService(secret string, ttl time.Duration, clk clock.Clock) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (s *Service) Issue(username string) (string, error) {
	if username == "" {
		return "", commonerrors.ErrTokenIssueFailed.WithCause(errors.New("empty username"))
	}

	claims := jwt.MapClaims{usernameClaim: username}
	if s.ttl > 0 {
		now := s.clock.Now()
		claims["iat"] = now.Unix()
		claims["exp"] = now.Add(s.ttl).Unix()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", commonerrors.ErrTokenIssueFailed.WithCause(err)
	}

	metrics.TokensIssued.Inc()
	return signed, nil
}

// Verify checks the signature and returns the embedded username. It never
// consults storage. Every failure is ErrInvalidToken.
func (s *Service) Verify(tokenString string) (string, error) {
	metrics.TokenValidationsTotal.Inc()

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		// reject signatures whose last character carries non-zero padding bits
		jwt.WithStrictDecoding(),
	}
	if s.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	parsed, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return "", s.invalid(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", s.invalid(errors.New("invalid claims"))
	}

	username, _ := claims[usernameClaim].(string)
	if username == "" {
		return "", s.invalid(errors.New("missing username claim"))
	}
	return username, nil
}

func (s *Service) invalid(cause error) error {
	metrics.TokenValidationsFailed.Inc()
	return commonerrors.ErrInvalidToken.WithCause(cause)
}
