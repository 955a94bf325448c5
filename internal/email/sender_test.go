package email

import (
	"testing"

	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestBuildBody(t *testing.T) {
	voucher := &entity.VoucherEmitido{
		ID:           "VOU12345678000001",
		Beneficios:   []string{"Vale Gás", "Plano de Saúde"},
		DataValidade: "14/02/2024",
	}
	colaborador := &entity.Colaborador{Nome: "João Silva"}

	body := buildBody(voucher, colaborador)

	assert.Contains(t, body, "João Silva")
	assert.Contains(t, body, "VOU12345678000001")
	assert.Contains(t, body, "2 item(ns)")
	assert.Contains(t, body, "14/02/2024")
}

func TestBuildBody_FallbackName(t *testing.T) {
	voucher := &entity.VoucherEmitido{ID: "VOU1"}

	body := buildBody(voucher, &entity.Colaborador{})
	assert.Contains(t, body, "Colaborador")
}
