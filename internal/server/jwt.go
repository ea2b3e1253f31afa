package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mentorque/skillmatch/internal/server/middleware"
)

// DefaultTokenLifetime is how long issued API tokens stay valid.
const DefaultTokenLifetime = 24 * time.Hour

// Claims represents JWT claims carried by API tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// claimsSubject adapts Claims to the middleware.SubjectGetter interface,
// which expects GetSubject() string rather than jwt.Claims' (string, error).
type claimsSubject struct {
	claims *Claims
}

// GetSubject returns the token subject.
// This implements the middleware.SubjectGetter interface.
func (c claimsSubject) GetSubject() string {
	return c.claims.Subject
}

// JWTService provides JWT token generation and validation functionality.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
}

// NewJWTService creates a new JWT service signing with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		lifetime: DefaultTokenLifetime,
	}
}

// GenerateToken generates a JWT token for the given subject.
func (s *JWTService) GenerateToken(subject string) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}

// AsTokenValidator returns a TokenValidator adapter for this JWTService.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return &jwtServiceValidator{service: s}
}

type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.SubjectGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claimsSubject{claims: claims}, nil
}

// requireAuth wraps a handler with token validation when auth is configured.
// Without a JWT secret the API is open.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	if s.jwtService == nil {
		return next
	}
	wrapped := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
	return wrapped.ServeHTTP
}
