package utils

import (
	"fmt"
	"regexp"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	cpfRegex   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateCPFFormat checks the formatted shape of a CPF ("123.456.789-00").
// Only the format is checked; check digits are not verified, matching how
// the portal stores the value.
func ValidateCPFFormat(cpf string) error {
	if !cpfRegex.MatchString(cpf) {
		return fmt.Errorf("invalid CPF format: %s", cpf)
	}
	return nil
}
