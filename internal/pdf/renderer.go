// Package pdf renders the printable voucher document sent to the holder.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/catalog"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// Renderer produces the voucher PDF: header, holder block, benefit
// breakdown, QR code and validity. Pure with respect to the voucher
// record; it only reads the snapshot it is given.
type Renderer struct {
	companyName string
	logger      *zap.Logger
}

// NewRenderer creates a new document renderer
func NewRenderer(companyName string, logger *zap.Logger) *Renderer {
	return &Renderer{
		companyName: companyName,
		logger:      logger,
	}
}

// Render builds the PDF and returns it as bytes ready for transport
func (r *Renderer) Render(req port.RenderRequest) ([]byte, error) {
	if req.Voucher == nil {
		return nil, fmt.Errorf("render request has no voucher")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(tr("Voucher "+req.Voucher.ID), false)
	doc.AddPage()

	// Header band
	doc.SetFillColor(30, 58, 138)
	doc.Rect(0, 0, 210, 28, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 18)
	doc.SetXY(10, 8)
	doc.CellFormat(0, 10, tr(r.companyName), "", 1, "L", false, 0, "")

	doc.SetTextColor(31, 41, 55)
	doc.SetFont("Helvetica", "B", 14)
	doc.SetXY(10, 36)
	doc.CellFormat(0, 8, tr("Voucher de Benefício"), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, tr(fmt.Sprintf("Número: %s", req.Voucher.ID)), "", 1, "L", false, 0, "")
	if req.Colaborador != nil {
		doc.CellFormat(0, 7, tr(fmt.Sprintf("Colaborador: %s (matrícula %s)", req.Colaborador.Nome, req.Colaborador.Matricula)), "", 1, "L", false, 0, "")
	}
	doc.CellFormat(0, 7, tr(fmt.Sprintf("CPF: %s", req.Voucher.CPF)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, tr(fmt.Sprintf("Validade: %s", req.Voucher.DataValidade)), "", 1, "L", false, 0, "")
	doc.Ln(4)

	// Benefit breakdown
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Benefícios"), "B", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	for _, title := range req.Voucher.Beneficios {
		label := ""
		for _, b := range catalog.All() {
			if b.Title == title {
				label = b.ValorLabel
				break
			}
		}
		doc.CellFormat(140, 7, tr(title), "", 0, "L", false, 0, "")
		doc.CellFormat(0, 7, tr(label), "", 1, "R", false, 0, "")
	}
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(140, 8, tr("Valor total"), "T", 0, "L", false, 0, "")
	doc.CellFormat(0, 8, tr(req.Voucher.Valor.FormatBRL()), "T", 1, "R", false, 0, "")
	doc.Ln(4)

	if req.Observacoes != "" {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, tr("Observações"), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 6, tr(req.Observacoes), "", "L", false)
		doc.Ln(2)
	}

	// Scannable code
	if len(req.QRCodePNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader("voucher-qr", opts, bytes.NewReader(req.QRCodePNG))
		doc.ImageOptions("voucher-qr", 80, doc.GetY()+4, 50, 50, false, opts, 0, "")
		doc.SetY(doc.GetY() + 58)
		doc.SetFont("Helvetica", "", 9)
		doc.CellFormat(0, 5, tr("Apresente este código no estabelecimento parceiro"), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		r.logger.Error("Failed to render voucher PDF",
			zap.String("voucher_id", req.Voucher.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to render voucher PDF: %w", err)
	}

	r.logger.Info("Voucher PDF rendered",
		zap.String("voucher_id", req.Voucher.ID),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

// Verify interface compliance
var _ port.DocumentRenderer = (*Renderer)(nil)
