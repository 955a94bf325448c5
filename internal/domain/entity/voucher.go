package entity

import (
	"time"

	"github.com/farmace/beneficios/internal/domain/money"
)

// VoucherStatus is the lifecycle status of an issued voucher
type VoucherStatus string

const (
	StatusEmitido   VoucherStatus = "emitido"
	StatusResgatado VoucherStatus = "resgatado"
)

// IsValid returns true if the status is a known voucher status
func (s VoucherStatus) IsValid() bool {
	return s == StatusEmitido || s == StatusResgatado
}

// String returns the string representation of the status
func (s VoucherStatus) String() string {
	return string(s)
}

// MultiplePartners is stored in Parceiro when a voucher bundles benefits
// from more than one establishment.
const MultiplePartners = "Múltiplos Benefícios"

// VoucherEmitido is an issued benefit voucher. Valor is fixed at issuance
// and is the invoicing basis; ValorResgatado records the amount actually
// handed over at the counter and is kept for audit only.
type VoucherEmitido struct {
	ID             string          `json:"id"`
	Funcionario    string          `json:"funcionario"`
	CPF            string          `json:"cpf"`
	Valor          money.Centavos  `json:"valor"`
	DataResgate    string          `json:"dataResgate"`
	HoraResgate    string          `json:"horaResgate"`
	Beneficios     []string        `json:"beneficios"`
	Parceiro       string          `json:"parceiro"`
	Status         VoucherStatus   `json:"status"`
	DataValidade   string          `json:"dataValidade"`
	ValorResgatado *money.Centavos `json:"valorResgatado,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// IsRedeemed reports whether the voucher has already been consumed
func (v *VoucherEmitido) IsRedeemed() bool {
	return v.Status == StatusResgatado
}

// RedemptionInfo carries the data captured when a voucher is consumed.
// DataResgate/HoraResgate are derived from Timestamp and set together,
// exactly once.
type RedemptionInfo struct {
	Timestamp      time.Time
	ValorFornecido money.Centavos
}

// DataResgate formats the redemption date the way the portal displays it
func (r RedemptionInfo) DataResgate() string {
	return r.Timestamp.Format("02/01/2006")
}

// HoraResgate formats the redemption time the way the portal displays it
func (r RedemptionInfo) HoraResgate() string {
	return r.Timestamp.Format("15:04")
}
