// Package email relays voucher documents to holders over SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Config holds SMTP configuration
type Config struct {
	Host       string
	Port       int
	User       string
	Password   string
	SenderName string
	Timeout    time.Duration
}

// Sender sends voucher emails with the PDF attached. Port 465 implies
// implicit TLS, anything else STARTTLS.
type Sender struct {
	cfg    Config
	logger *zap.Logger
}

// NewSender creates a new email sender
func NewSender(cfg Config, logger *zap.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendVoucher emails the voucher document to the holder and returns a
// delivery identifier. The caller treats any error as non-fatal: the
// voucher exists whether or not this call succeeds.
func (s *Sender) SendVoucher(ctx context.Context, voucher *entity.VoucherEmitido, colaborador *entity.Colaborador, pdf []byte) (string, error) {
	s.logger.Info("Sending voucher email",
		zap.String("voucher_id", voucher.ID),
		zap.String("destinatario", colaborador.Email))

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Password),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create SMTP client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.SenderName, s.cfg.User); err != nil {
		return "", fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(colaborador.Email); err != nil {
		return "", fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(fmt.Sprintf("Voucher de Benefício - %s", voucher.ID))
	msg.SetBodyString(mail.TypeTextHTML, buildBody(voucher, colaborador))

	if err := msg.AttachReader(fmt.Sprintf("voucher-%s.pdf", voucher.ID), bytes.NewReader(pdf)); err != nil {
		return "", fmt.Errorf("failed to attach voucher PDF: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error("Failed to send voucher email",
			zap.String("voucher_id", voucher.ID),
			zap.Error(err))
		return "", fmt.Errorf("failed to send voucher email: %w", err)
	}

	deliveryID := uuid.NewString()
	s.logger.Info("Voucher email sent",
		zap.String("voucher_id", voucher.ID),
		zap.String("delivery_id", deliveryID))

	return deliveryID, nil
}

func buildBody(voucher *entity.VoucherEmitido, colaborador *entity.Colaborador) string {
	nome := colaborador.Nome
	if nome == "" {
		nome = "Colaborador"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, `<html><body style="font-family: Arial, sans-serif; color: #1F2937;">`)
	fmt.Fprintf(&b, `<h1 style="color: #1E3A8A;">Voucher Gerado com Sucesso!</h1>`)
	fmt.Fprintf(&b, `<p>Olá <strong>%s</strong>,</p>`, nome)
	fmt.Fprintf(&b, `<p>Seu voucher de benefício foi gerado com sucesso.</p>`)
	fmt.Fprintf(&b, `<p>Número do Voucher: <strong>%s</strong></p>`, voucher.ID)
	fmt.Fprintf(&b, `<p>Benefícios: %d item(ns)</p>`, len(voucher.Beneficios))
	fmt.Fprintf(&b, `<p>Validade: %s</p>`, voucher.DataValidade)
	fmt.Fprintf(&b, `<p>O documento em PDF está anexado a este e-mail.</p>`)
	fmt.Fprintf(&b, `</body></html>`)
	return b.String()
}

// Verify interface compliance
var _ port.EmailDelivery = (*Sender)(nil)
