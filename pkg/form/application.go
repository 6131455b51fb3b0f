package form

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const maxMotivationLen = 10000

// ApplicationForm is the public intake payload
type ApplicationForm struct {
	ApplicantName string `json:"applicant_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Motivation    string `json:"motivation"`
}

// Validate checks the intake fields. Trimmed values are written back so
// storage sees the canonical form.
func (f *ApplicationForm) Validate() error {
	f.ApplicantName = strings.TrimSpace(f.ApplicantName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Motivation = strings.TrimSpace(f.Motivation)

	if f.ApplicantName == "" {
		return errors.New("applicant_name is required")
	}
	if f.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return errors.New("email is not a valid address")
	}
	if f.Motivation == "" {
		return errors.New("motivation is required")
	}
	if len(f.Motivation) > maxMotivationLen {
		return fmt.Errorf("motivation exceeds %d characters", maxMotivationLen)
	}
	return nil
}
