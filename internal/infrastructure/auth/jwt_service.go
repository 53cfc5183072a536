package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/transitops/backend/internal/domain/identity"
)

var (
	// ErrInvalidToken is returned when a token fails parsing or signature checks
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token is past its expiration
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the actor identity inside an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID         int                    `json:"user_id"`
	Registration   string                 `json:"registration"`
	Name           string                 `json:"name"`
	Departments    []int                  `json:"departments"`
	AccessLevels   []identity.AccessLevel `json:"access_levels"`
	MainDepartment string                 `json:"main_department"`
}

// Actor rebuilds the workflow actor from the token claims.
func (c *Claims) Actor() identity.Actor {
	return identity.Actor{
		ID:             c.UserID,
		Registration:   c.Registration,
		Name:           c.Name,
		Departments:    c.Departments,
		AccessLevels:   c.AccessLevels,
		MainDepartment: c.MainDepartment,
	}
}

// JWTService issues and validates access tokens
type JWTService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewJWTService creates a JWT service
func NewJWTService(secret, issuer string, expiration time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
	}
}

// GenerateAccessToken signs an access token for the actor
func (s *JWTService) GenerateAccessToken(actor identity.Actor) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		UserID:         actor.ID,
		Registration:   actor.Registration,
		Name:           actor.Name,
		Departments:    actor.Departments,
		AccessLevels:   actor.AccessLevels,
		MainDepartment: actor.MainDepartment,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAccessToken parses and verifies an access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != s.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
