// Package excel produces the HR-facing invoice workbook for a partner.
package excel

import (
	"bytes"
	"fmt"

	"github.com/farmace/beneficios/internal/catalog"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/money"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// InvoiceExporter renders a partner invoice summary as an xlsx workbook
type InvoiceExporter struct {
	companyName string
	logger      *zap.Logger
}

// NewInvoiceExporter creates a new invoice exporter
func NewInvoiceExporter(companyName string, logger *zap.Logger) *InvoiceExporter {
	return &InvoiceExporter{
		companyName: companyName,
		logger:      logger,
	}
}

// Export builds the workbook: one row per voucher, then count and face
// value total. Totals sum face values, not tendered amounts.
func (e *InvoiceExporter) Export(partner *catalog.Partner, vouchers []*entity.VoucherEmitido, total money.Centavos) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	e.setCell(f, sheet, "A1", e.companyName)
	e.setCell(f, sheet, "A2", fmt.Sprintf("Fatura - %s", partner.Name))

	headers := []string{"Voucher", "Funcionário", "CPF", "Valor", "Status", "Data Resgate"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		e.setCell(f, sheet, cell, h)
	}

	row := 5
	for _, v := range vouchers {
		e.setCell(f, sheet, fmt.Sprintf("A%d", row), v.ID)
		e.setCell(f, sheet, fmt.Sprintf("B%d", row), v.Funcionario)
		e.setCell(f, sheet, fmt.Sprintf("C%d", row), v.CPF)
		e.setCell(f, sheet, fmt.Sprintf("D%d", row), v.Valor.FormatBRL())
		e.setCell(f, sheet, fmt.Sprintf("E%d", row), v.Status.String())
		e.setCell(f, sheet, fmt.Sprintf("F%d", row), v.DataResgate)
		row++
	}

	row++
	e.setCell(f, sheet, fmt.Sprintf("A%d", row), "Qtd. Vouchers")
	e.setCell(f, sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%d", len(vouchers)))
	row++
	e.setCell(f, sheet, fmt.Sprintf("A%d", row), "Valor Total")
	e.setCell(f, sheet, fmt.Sprintf("B%d", row), total.FormatBRL())

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		e.logger.Error("Failed to write invoice workbook",
			zap.String("partner_id", partner.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to write invoice workbook: %w", err)
	}

	e.logger.Info("Invoice workbook exported",
		zap.String("partner_id", partner.ID),
		zap.Int("vouchers", len(vouchers)))

	return buf.Bytes(), nil
}

func (e *InvoiceExporter) setCell(f *excelize.File, sheet, cell string, value interface{}) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("sheet", sheet),
			zap.String("cell", cell),
			zap.Error(err))
	}
}
