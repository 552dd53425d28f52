package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
)

// SignedCredentialConfig defines signed credential settings
type SignedCredentialConfig struct {
	SecretKey  string
	Expiration time.Duration
	Issuer     string
}

// SignedCredential is the HS256-signed, expiring replacement for the legacy
// scheme. The credential is a JWT whose subject is the student's roll number.
type SignedCredential struct {
	config SignedCredentialConfig
}

// NewSignedCredential creates the signed credential scheme.
func NewSignedCredential(config SignedCredentialConfig) *SignedCredential {
	return &SignedCredential{
		config: config,
	}
}

// Claims defines the signed credential content
type Claims struct {
	RollNumber string `json:"rollNumber"`
	jwt.RegisteredClaims
}

// Issue creates a signed credential for the roll number.
func (s *SignedCredential) Issue(rollNumber string) (string, error) {
	if rollNumber == "" {
		return "", fmt.Errorf("%w: empty roll number", apperrors.ErrValidationFailed)
	}

	now := time.Now()
	claims := &Claims{
		RollNumber: rollNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   rollNumber,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, expiry, and roll number binding.
func (s *SignedCredential) Verify(rollNumber, credential string) error {
	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return apperrors.ErrCredentialExpired
		}
		return apperrors.ErrCredentialInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return apperrors.ErrCredentialInvalid
	}

	if claims.RollNumber != rollNumber {
		return apperrors.ErrInvalidCredentials
	}

	return nil
}

// ExpiresIn returns the configured credential lifetime.
func (s *SignedCredential) ExpiresIn() time.Duration {
	return s.config.Expiration
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.ErrCredentialMissing
	}

	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
		return "", apperrors.ErrCredentialInvalid
	}

	return authHeader[len(prefix):], nil
}
