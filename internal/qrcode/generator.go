// Package qrcode renders the scannable code embedded in voucher documents.
package qrcode

import (
	"encoding/json"
	"fmt"

	"github.com/farmace/beneficios/internal/application/port"
	qr "github.com/skip2/go-qrcode"
)

// Generator encodes a voucher payload into a QR PNG
type Generator struct {
	size int
}

// NewGenerator creates a generator producing images of the given pixel size
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = 200
	}
	return &Generator{size: size}
}

// Generate encodes the payload as JSON and renders it as a PNG
func (g *Generator) Generate(payload port.QRPayload) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}

	png, err := qr.Encode(string(data), qr.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return png, nil
}

// Verify interface compliance
var _ port.CodeGenerator = (*Generator)(nil)
