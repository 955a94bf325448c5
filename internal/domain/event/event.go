package event

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Type identifies the type of domain event
type Type string

const (
	TypeVoucherIssued            Type = "voucher.issued"
	TypeVoucherRedeemed          Type = "voucher.redeemed"
	TypeVoucherStoreChanged      Type = "voucher.store_changed"
	TypeNotificationStoreChanged Type = "notification.store_changed"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeVoucherIssued,
		TypeVoucherRedeemed,
		TypeVoucherStoreChanged,
		TypeNotificationStoreChanged:
		return true
	}
	return false
}

// Event is a same-process domain event. Store-changed events are the
// refresh broadcast open views subscribe to; they carry the id of the
// record that changed.
type Event struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	VoucherID string                 `json:"voucher_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// New creates a new domain event with an auto-generated id and timestamp
func New(eventType Type, voucherID string, payload map[string]interface{}) *Event {
	return &Event{
		ID:        generateID(),
		Type:      eventType,
		VoucherID: voucherID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// generateID creates a unique id using timestamp and random bytes
func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), hex.EncodeToString(b))
}
