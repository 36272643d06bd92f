package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// MinKeyLength is the shortest HMAC secret accepted for HS256.
const MinKeyLength = 32

// DefaultTTL is the session token lifetime used when WithTTL is not given.
const DefaultTTL = 24 * time.Hour

// Claims is the payload of a member session token.
// MemberID is carried under the "id" claim and mirrored into "sub".
type Claims struct {
	MemberID string `json:"id"`
	gojwt.RegisteredClaims
}

// Signer issues and verifies HS256 session tokens.
// The signing key is copied at construction and never exposed.
type Signer struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithTTL sets the token lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Signer) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithIssuer sets the "iss" claim on issued tokens and requires it on verification.
func WithIssuer(issuer string) Option {
	return func(s *Signer) { s.issuer = issuer }
}

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Signer from raw key bytes.
func New(key []byte, opts ...Option) (*Signer, error) {
	if len(key) == 0 {
		return nil, ErrMissingSigningKey
	}
	if len(key) < MinKeyLength {
		return nil, ErrWeakSigningKey
	}

	s := &Signer{
		key: append([]byte(nil), key...),
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromString creates a Signer from a configured secret string.
func NewFromString(secret string, opts ...Option) (*Signer, error) {
	return New([]byte(secret), opts...)
}

// TTL reports the lifetime of issued tokens.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Issue mints a token for the given member id.
// Two calls with the same member id within the same second produce identical tokens.
func (s *Signer) Issue(memberID string) (string, error) {
	if memberID == "" {
		return "", ErrMissingSubject
	}

	now := s.now()
	claims := Claims{
		MemberID: memberID,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   memberID,
			Issuer:    s.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify checks the signature, algorithm and expiry of a token and returns its claims.
func (s *Signer) Verify(token string) (*Claims, error) {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, s.keyFunc, opts...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.MemberID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Signer) keyFunc(t *gojwt.Token) (any, error) {
	if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return s.key, nil
}
