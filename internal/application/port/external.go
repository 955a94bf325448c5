package port

import (
	"context"

	"github.com/farmace/beneficios/internal/domain/entity"
)

// QRPayload is the opaque payload encoded into the scannable code
type QRPayload struct {
	Voucher    string   `json:"voucher"`
	Beneficios []string `json:"beneficios"`
	Data       string   `json:"data"`
	Empresa    string   `json:"empresa"`
}

// CodeGenerator renders a scannable code image for a payload. Pure: no
// side effects on the voucher record.
type CodeGenerator interface {
	Generate(payload QRPayload) ([]byte, error)
}

// RenderRequest carries everything the document renderer needs
type RenderRequest struct {
	Voucher     *entity.VoucherEmitido
	Colaborador *entity.Colaborador
	// Observacoes is the free-text request form detail entered at issuance
	Observacoes string
	QRCodePNG   []byte
}

// DocumentRenderer produces the printable voucher document. Pure function
// from the caller's perspective.
type DocumentRenderer interface {
	Render(req RenderRequest) ([]byte, error)
}

// EmailDelivery relays the voucher document to the holder. A failure here
// never rolls back the issued voucher.
type EmailDelivery interface {
	// SendVoucher returns a delivery identifier on success
	SendVoucher(ctx context.Context, voucher *entity.VoucherEmitido, colaborador *entity.Colaborador, pdf []byte) (string, error)
}
