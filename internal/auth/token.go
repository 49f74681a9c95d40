package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"employee-directory/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that cannot be trusted.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by every issued token. Subject and NameID hold the surrogate id.
type Claims struct {
	Email          string `json:"email"`
	DocumentNumber int64  `json:"document_number"`
	Role           string `json:"role"`
	NameID         string `json:"nameid"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and parses HS256 identity tokens.
type JWTIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*JWTIssuer)

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(j *JWTIssuer) {
		j.now = now
	}
}

func NewJWTIssuer(secret, issuer, audience string, ttl time.Duration, opts ...Option) *JWTIssuer {
	j := &JWTIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Issue creates a signed token asserting the identity.
func (j *JWTIssuer) Issue(identity models.Identity) (string, error) {
	now := j.now().UTC()
	subject := strconv.FormatInt(identity.SubjectID, 10)

	claims := Claims{
		Email:          identity.Email,
		DocumentNumber: identity.DocumentNumber,
		Role:           identity.Role.String(),
		NameID:         subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the identity it asserts.
func (j *JWTIssuer) Parse(tokenString string) (*models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	},
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" || claims.DocumentNumber == 0 {
		return nil, ErrInvalidToken
	}

	return &models.Identity{
		SubjectID:      subjectID,
		Email:          claims.Email,
		DocumentNumber: claims.DocumentNumber,
		Role:           role,
	}, nil
}
