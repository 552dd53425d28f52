// Package auth implements the login credential schemes.
package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
)

// CredentialScheme issues and verifies the opaque credential returned at
// login. Handlers only ever see this interface, so the legacy scheme can be
// swapped for the signed one without touching them.
type CredentialScheme interface {
	// Issue creates a credential bound to the given roll number.
	Issue(rollNumber string) (string, error)
	// Verify checks that the credential decodes to the claimed roll number.
	Verify(rollNumber, credential string) error
	// ExpiresIn returns the credential lifetime, or 0 when credentials
	// never expire.
	ExpiresIn() time.Duration
}

// LegacyRollCredential is the original unsigned, unexpiring scheme: the
// credential is base64 of "rollNumber:issuedAtUnixMillis". Verification only
// compares the decoded roll number against the claimed one; the timestamp is
// carried but never checked. Kept for compatibility with existing clients,
// not a pattern to build on.
type LegacyRollCredential struct{}

// NewLegacyRollCredential creates the legacy credential scheme.
func NewLegacyRollCredential() *LegacyRollCredential {
	return &LegacyRollCredential{}
}

// Issue creates an unsigned credential for the roll number.
func (s *LegacyRollCredential) Issue(rollNumber string) (string, error) {
	if rollNumber == "" {
		return "", fmt.Errorf("%w: empty roll number", apperrors.ErrValidationFailed)
	}
	raw := fmt.Sprintf("%s:%d", rollNumber, time.Now().UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// Verify checks the credential against the claimed roll number.
func (s *LegacyRollCredential) Verify(rollNumber, credential string) error {
	decoded, err := base64.StdEncoding.DecodeString(credential)
	if err != nil {
		return apperrors.ErrCredentialInvalid
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return apperrors.ErrCredentialInvalid
	}

	if parts[0] != rollNumber {
		return apperrors.ErrInvalidCredentials
	}

	return nil
}

// ExpiresIn returns 0: legacy credentials never expire.
func (s *LegacyRollCredential) ExpiresIn() time.Duration {
	return 0
}
