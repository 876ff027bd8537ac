package members

import (
	"fmt"
	"time"
	"unicode"
)

// Gender is the profile gender enumeration.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Member is a persisted identity record. The email is the stable unique
// identifier and is never reused by a different member, even after
// withdrawal.
type Member struct {
	Email          string     `json:"email,omitempty"`        // Unique, stable identifier
	PasswordHash   string     `json:"-"`                      // Hashed password - never serialize
	Name           string     `json:"name,omitempty"`         // Display name
	Gender         Gender     `json:"gender,omitempty"`       // MALE or FEMALE
	Birth          time.Time  `json:"birth,omitempty"`        // Date of birth
	PhoneNumber    string     `json:"phone_number,omitempty"` // Contact phone number
	JoinedAt       time.Time  `json:"joined_at,omitempty"`    // When the member signed up
	WithdrawalDate *time.Time `json:"-"`                      // Set once on deactivation; nil means active
}

// Withdrawn reports whether the member has deactivated their account.
// A withdrawn member's email is permanently barred from re-registration.
func (m *Member) Withdrawn() bool {
	return m.WithdrawalDate != nil
}

// ValidatePasswordStrength checks if a password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
