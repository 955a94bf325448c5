package service

import "errors"

// Validation errors are reported to the caller immediately, no retry
var (
	// ErrNoBenefits is returned when issuance is requested with an empty selection
	ErrNoBenefits = errors.New("no benefits selected")

	// ErrUnknownBenefit is returned when a selected benefit id is not in the catalog
	ErrUnknownBenefit = errors.New("unknown benefit")

	// ErrMissingEmail is returned when the holder has no email address on file
	ErrMissingEmail = errors.New("holder email not found")

	// ErrInvalidCPF is returned when a provided CPF is not in the 000.000.000-00 shape
	ErrInvalidCPF = errors.New("invalid CPF")

	// ErrInvalidAmount is returned when the tendered amount is outside (0, face value]
	ErrInvalidAmount = errors.New("invalid redemption amount")

	// ErrSessionNotFound is returned when a redemption session id is unknown or expired
	ErrSessionNotFound = errors.New("redemption session not found")

	// ErrVoucherExpired is returned when validity enforcement is enabled and
	// the voucher's dataValidade has passed
	ErrVoucherExpired = errors.New("voucher expired")

	// ErrPartnerNotFound is returned for an unknown partner id
	ErrPartnerNotFound = errors.New("partner not found")
)
