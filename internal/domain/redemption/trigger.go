package redemption

// Trigger represents an operator action that can advance the flow
type Trigger string

const (
	// TriggerLookup resolves a scanned code against the voucher store
	TriggerLookup Trigger = "LOOKUP"
	// TriggerConfirm accepts the displayed voucher details
	TriggerConfirm Trigger = "CONFIRM"
	// TriggerFinalize records the tendered amount and consumes the voucher
	TriggerFinalize Trigger = "FINALIZE"
	// TriggerReset returns to the code entry stage from any state
	TriggerReset Trigger = "RESET"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
