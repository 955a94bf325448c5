package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/catalog"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/event"
	"github.com/farmace/beneficios/internal/domain/money"
	"github.com/farmace/beneficios/internal/repository"
	"github.com/farmace/beneficios/pkg/utils"
	"go.uber.org/zap"
)

// IssueRequest carries everything needed to issue a voucher
type IssueRequest struct {
	Colaborador entity.Colaborador
	BenefitIDs  []string
	Observacoes string
}

// IssueResult is the outcome of an issuance. DeliveryWarning is set when
// QR/PDF/email generation failed; the voucher is issued regardless.
type IssueResult struct {
	Voucher         *entity.VoucherEmitido
	DeliveryID      string
	DeliveryWarning string
}

// IssuanceService creates voucher records and drives the post-persist
// delivery chain (QR, PDF, email).
type IssuanceService struct {
	vouchers     port.VoucherRepository
	codes        port.CodeGenerator
	renderer     port.DocumentRenderer
	email        port.EmailDelivery
	dispatcher   event.Dispatcher
	companyName  string
	validityDays int
	logger       *zap.Logger

	now func() time.Time
}

// NewIssuanceService creates a new issuance service
func NewIssuanceService(
	vouchers port.VoucherRepository,
	codes port.CodeGenerator,
	renderer port.DocumentRenderer,
	email port.EmailDelivery,
	dispatcher event.Dispatcher,
	companyName string,
	validityDays int,
	logger *zap.Logger,
) *IssuanceService {
	return &IssuanceService{
		vouchers:     vouchers,
		codes:        codes,
		renderer:     renderer,
		email:        email,
		dispatcher:   dispatcher,
		companyName:  companyName,
		validityDays: validityDays,
		logger:       logger,
		now:          time.Now,
	}
}

// Issue validates the request, persists the voucher, then runs the
// delivery chain. Delivery failures never roll back the persisted record;
// they come back as a warning on the result.
func (s *IssuanceService) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	if len(req.BenefitIDs) == 0 {
		return nil, ErrNoBenefits
	}
	if req.Colaborador.Email == "" {
		return nil, ErrMissingEmail
	}
	if err := utils.ValidateEmail(req.Colaborador.Email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingEmail, err)
	}
	// CPF is optional, but a provided one must be well formed
	if req.Colaborador.CPF != "" {
		if err := utils.ValidateCPFFormat(req.Colaborador.CPF); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCPF, err)
		}
	}

	entries := make([]*catalog.Beneficio, 0, len(req.BenefitIDs))
	for _, id := range req.BenefitIDs {
		b, ok := catalog.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBenefit, id)
		}
		entries = append(entries, b)
	}

	var total money.Centavos
	titles := make([]string, 0, len(entries))
	for _, b := range entries {
		total += b.Valor
		titles = append(titles, b.Title)
	}

	// One benefit: the voucher belongs to that benefit's establishment.
	// More than one: the sentinel, invoiced per partner via the registry.
	parceiro := entity.MultiplePartners
	if len(entries) == 1 {
		parceiro = entries[0].Title
	}

	now := s.now()
	voucher := &entity.VoucherEmitido{
		Funcionario:  req.Colaborador.Nome,
		CPF:          req.Colaborador.CPF,
		Valor:        total,
		DataResgate:  "",
		HoraResgate:  "",
		Beneficios:   titles,
		Parceiro:     parceiro,
		Status:       entity.StatusEmitido,
		DataValidade: now.AddDate(0, 0, s.validityDays).Format("02/01/2006"),
		CreatedAt:    now,
	}

	if err := s.persistWithFreshID(ctx, voucher); err != nil {
		return nil, err
	}

	s.logger.Info("Voucher issued",
		zap.String("id", voucher.ID),
		zap.String("funcionario", voucher.Funcionario),
		zap.Int64("valor", int64(voucher.Valor)))

	s.dispatcher.DispatchAsync(ctx, event.New(event.TypeVoucherIssued, voucher.ID, map[string]interface{}{
		"funcionario": voucher.Funcionario,
		"parceiro":    voucher.Parceiro,
	}))

	result := &IssueResult{Voucher: voucher}
	deliveryID, err := s.deliver(ctx, voucher, &req.Colaborador, req.Observacoes)
	if err != nil {
		// The voucher stays issued; the caller shows a non-fatal warning
		s.logger.Warn("Voucher delivery failed",
			zap.String("id", voucher.ID),
			zap.Error(err))
		result.DeliveryWarning = fmt.Sprintf("voucher %s emitido, mas o envio por e-mail falhou: %v", voucher.ID, err)
		return result, nil
	}

	result.DeliveryID = deliveryID
	return result, nil
}

// persistWithFreshID assigns a new voucher id and saves, regenerating the
// id if it is already taken
func (s *IssuanceService) persistWithFreshID(ctx context.Context, voucher *entity.VoucherEmitido) error {
	const maxAttempts = 3

	for attempt := 0; attempt < maxAttempts; attempt++ {
		voucher.ID = s.generateVoucherID()

		_, err := s.vouchers.GetByID(ctx, voucher.ID)
		if err == nil {
			s.logger.Warn("Voucher id collision, regenerating", zap.String("id", voucher.ID))
			continue
		}
		if !errors.Is(err, repository.ErrVoucherNotFound) {
			return fmt.Errorf("failed to check voucher id: %w", err)
		}

		if err := s.vouchers.Save(ctx, voucher); err != nil {
			return fmt.Errorf("failed to persist voucher: %w", err)
		}
		return nil
	}

	return fmt.Errorf("could not allocate a unique voucher id after %d attempts", maxAttempts)
}

// generateVoucherID builds a "VOU" + digits code: an 8-digit time suffix
// plus 6 crypto-random digits
func (s *IssuanceService) generateVoucherID() string {
	millis := strconv.FormatInt(s.now().UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// crypto/rand failing means the platform is broken; fall back to time
		n = big.NewInt(s.now().UnixNano() % 1_000_000)
	}

	return fmt.Sprintf("VOU%s%06d", millis, n.Int64())
}

// deliver runs QR -> PDF -> email; the first failure aborts the rest
func (s *IssuanceService) deliver(ctx context.Context, voucher *entity.VoucherEmitido, colaborador *entity.Colaborador, observacoes string) (string, error) {
	png, err := s.codes.Generate(port.QRPayload{
		Voucher:    voucher.ID,
		Beneficios: voucher.Beneficios,
		Data:       voucher.CreatedAt.Format(time.RFC3339),
		Empresa:    s.companyName,
	})
	if err != nil {
		return "", fmt.Errorf("QR generation failed: %w", err)
	}

	pdf, err := s.renderer.Render(port.RenderRequest{
		Voucher:     voucher,
		Colaborador: colaborador,
		Observacoes: observacoes,
		QRCodePNG:   png,
	})
	if err != nil {
		return "", fmt.Errorf("PDF generation failed: %w", err)
	}

	deliveryID, err := s.email.SendVoucher(ctx, voucher, colaborador, pdf)
	if err != nil {
		return "", fmt.Errorf("email delivery failed: %w", err)
	}

	return deliveryID, nil
}
