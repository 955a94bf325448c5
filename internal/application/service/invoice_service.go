package service

import (
	"context"
	"fmt"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/catalog"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/money"
	"github.com/farmace/beneficios/internal/excel"
	"go.uber.org/zap"
)

// PartnerInvoice is the aggregated billing view for one partner
type PartnerInvoice struct {
	Partner  *catalog.Partner         `json:"partner"`
	Vouchers []*entity.VoucherEmitido `json:"vouchers"`
	Count    int                      `json:"count"`
	Total    money.Centavos           `json:"total"`
}

// InvoiceService aggregates voucher records into per-partner invoices
type InvoiceService struct {
	vouchers port.VoucherRepository
	exporter *excel.InvoiceExporter
	logger   *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(vouchers port.VoucherRepository, exporter *excel.InvoiceExporter, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		vouchers: vouchers,
		exporter: exporter,
		logger:   logger,
	}
}

// ForPartner builds the invoice for one partner id. Records are looked up
// under every known name variant and deduplicated by voucher id, so a
// record matching two spellings is billed once. Totals sum face values;
// the tendered amount never changes what the partner invoices.
func (s *InvoiceService) ForPartner(ctx context.Context, partnerID string) (*PartnerInvoice, error) {
	partner, ok := catalog.LookupPartner(partnerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartnerNotFound, partnerID)
	}

	var matched []*entity.VoucherEmitido
	for _, name := range partner.NameVariants {
		records, err := s.vouchers.FindByPartner(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load vouchers for partner %s: %w", partnerID, err)
		}
		matched = append(matched, records...)
	}

	invoice := Aggregate(partner, matched)

	s.logger.Info("Partner invoice built",
		zap.String("partner_id", partnerID),
		zap.Int("vouchers", invoice.Count),
		zap.Int64("total", int64(invoice.Total)))

	return invoice, nil
}

// ExportXLSX renders the partner invoice as an xlsx workbook
func (s *InvoiceService) ExportXLSX(ctx context.Context, partnerID string) ([]byte, error) {
	invoice, err := s.ForPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(invoice.Partner, invoice.Vouchers, invoice.Total)
}

// Aggregate dedupes vouchers by id and totals their face values. Pure so
// tests can exercise the arithmetic without storage. A record matching two
// name variants is billed once.
func Aggregate(partner *catalog.Partner, vouchers []*entity.VoucherEmitido) *PartnerInvoice {
	seen := make(map[string]bool, len(vouchers))
	unique := make([]*entity.VoucherEmitido, 0, len(vouchers))
	var total money.Centavos
	for _, v := range vouchers {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		unique = append(unique, v)
		total += v.Valor
	}
	return &PartnerInvoice{
		Partner:  partner,
		Vouchers: unique,
		Count:    len(unique),
		Total:    total,
	}
}
