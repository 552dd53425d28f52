package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,10}$`

	// Roll number pattern - uppercase letters and digits, 4 to 20 characters
	RollNumberPattern = `^[A-Z0-9]{4,20}$`

	// Contact number pattern - 10 to 15 digits, optional leading +
	ContactNoPattern = `^\+?\d{10,15}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	RollNumber *regexp.Regexp
	ContactNo  *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	RollNumber: regexp.MustCompile(RollNumberPattern),
	ContactNo:  regexp.MustCompile(ContactNoPattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(strings.TrimSpace(value))
}

// IsValidRollNumber reports whether the value is an acceptable roll number.
func IsValidRollNumber(value string) bool {
	return CompiledPatterns.RollNumber.MatchString(strings.TrimSpace(value))
}

// IsValidContactNo reports whether the value is an acceptable contact number.
func IsValidContactNo(value string) bool {
	return CompiledPatterns.ContactNo.MatchString(strings.TrimSpace(value))
}

// IsValidName reports whether the value is an acceptable person or college name.
func IsValidName(value string) bool {
	trimmed := strings.TrimSpace(value)
	return len(trimmed) >= NameMinLength && len(trimmed) <= NameMaxLength
}
