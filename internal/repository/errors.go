package repository

import "errors"

var (
	// ErrVoucherNotFound is returned when no record exists for a voucher code
	ErrVoucherNotFound = errors.New("voucher not found")

	// ErrAlreadyRedeemed is returned when a voucher was already consumed.
	// One voucher, one use: a second redemption is rejected, not ignored.
	ErrAlreadyRedeemed = errors.New("voucher already redeemed")

	// ErrNotificationNotFound is returned when no notification exists for an id
	ErrNotificationNotFound = errors.New("notification not found")
)
