package dto

import "github.com/emrekara/course-feedback/internal/app/models"

// LoginRequest represents login by (email, rollNumber) pair
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email" example:"priya@example.com"`
	RollNumber string `json:"rollNumber" binding:"required" example:"CS2023001"`
}

// CredentialResponse represents an issued credential
type CredentialResponse struct {
	Credential string `json:"credential"`
	TokenType  string `json:"tokenType" example:"Bearer"`
	// ExpiresIn is the credential lifetime in seconds, omitted when the
	// legacy scheme is active (legacy credentials never expire).
	ExpiresIn int64 `json:"expiresIn,omitempty"`
}

// AuthResponse represents a successful login or auth registration
type AuthResponse struct {
	Credential CredentialResponse `json:"credential"`
	Student    *models.Student    `json:"student"`
}
