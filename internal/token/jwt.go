package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/countries-api/internal/model"
)

// DefaultTTL is the lifetime of tokens minted without an explicit TTL.
const DefaultTTL = 7 * 24 * time.Hour

var _ model.TokenCodec = (*JWT)(nil)

// Claims is the wire representation of model.Claims.
type Claims struct {
	jwt.RegisteredClaims
	User model.EmbeddedUser `json:"user"`
}

// JWT implements TokenCodec backed by symmetric HMAC-SHA256.
type JWT struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// Option configures a JWT codec.
type Option func(*JWT)

// WithClock overrides the time source used to mint and verify tokens.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT codec signing with secretKey and stamping issuer into every token.
// A non-positive ttl falls back to DefaultTTL.
func NewJWT(secretKey, issuer string, ttl time.Duration, opts ...Option) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	j := &JWT{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// MintDefault creates a token for user valid for the configured TTL.
func (j *JWT) MintDefault(user model.User) (string, error) {
	return j.Mint(user, j.ttl)
}

// Mint creates a token for user valid for ttl.
func (j *JWT) Mint(user model.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	if user.ID == uuid.Nil {
		return "", errors.New("cannot mint token for user without id")
	}

	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		User: model.EmbeddedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
func (j *JWT) Verify(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.Claims{}, classify(err)
	}

	if claims.Subject == "" {
		return model.Claims{}, fmt.Errorf("%w: missing subject", model.ErrTokenMalformed)
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Claims{}, fmt.Errorf("%w: subject is not a valid id: %w", model.ErrTokenMalformed, err)
	}

	out := model.Claims{
		ID:      claims.ID,
		Issuer:  claims.Issuer,
		Subject: subject,
		User:    claims.User,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", model.ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", model.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", model.ErrTokenInvalid, err)
	}
}
