package redemption

import (
	"context"
	"errors"
	"testing"

	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeVoucher(valor money.Centavos) *entity.VoucherEmitido {
	return &entity.VoucherEmitido{
		ID:          "VOU12345678000001",
		Funcionario: "João Silva",
		CPF:         "123.456.789-00",
		Valor:       valor,
		Beneficios:  []string{"Vale Gás"},
		Parceiro:    "Vale Gás",
		Status:      entity.StatusEmitido,
	}
}

func redeemedVoucher() *entity.VoucherEmitido {
	v := activeVoucher(12500)
	v.Status = entity.StatusResgatado
	return v
}

func TestSession_FullRedemption(t *testing.T) {
	sess := NewSession("sess-1")
	ctx := context.Background()

	assert.Equal(t, StateEntrada, sess.State())

	require.NoError(t, sess.Lookup(ctx, activeVoucher(12500)))
	assert.Equal(t, StateDados, sess.State())

	require.NoError(t, sess.Confirm(ctx))
	assert.Equal(t, StateValor, sess.State())

	var committedID string
	var committedInfo entity.RedemptionInfo
	commit := func(ctx context.Context, voucherID string, info entity.RedemptionInfo) error {
		committedID = voucherID
		committedInfo = info
		return nil
	}

	require.NoError(t, sess.Finalize(ctx, 12500, commit))
	assert.Equal(t, StateFinalizado, sess.State())
	assert.Equal(t, "VOU12345678000001", committedID)
	assert.Equal(t, money.Centavos(12500), committedInfo.ValorFornecido)

	// The snapshot reflects the consumed record, resgate fields included
	v := sess.Voucher()
	assert.True(t, v.IsRedeemed())
	assert.Equal(t, committedInfo.DataResgate(), v.DataResgate)
	assert.Equal(t, committedInfo.HoraResgate(), v.HoraResgate)
	require.NotNil(t, v.ValorResgatado)
	assert.Equal(t, money.Centavos(12500), *v.ValorResgatado)
}

func TestSession_LookupAttachesUsedVoucher(t *testing.T) {
	sess := NewSession("sess-1")
	ctx := context.Background()

	// A used voucher still reaches dados so the operator can see it
	require.NoError(t, sess.Lookup(ctx, redeemedVoucher()))
	assert.Equal(t, StateDados, sess.State())

	// But confirmation is blocked
	err := sess.Confirm(ctx)
	assert.ErrorIs(t, err, ErrGuardFailed)
	assert.Equal(t, StateDados, sess.State())
}

func TestSession_FinalizeAmountBounds(t *testing.T) {
	tests := []struct {
		name   string
		amount money.Centavos
		ok     bool
	}{
		{
			name:   "zero is rejected",
			amount: 0,
			ok:     false,
		},
		{
			name:   "negative is rejected",
			amount: -100,
			ok:     false,
		},
		{
			name:   "one centavo over face value is rejected",
			amount: 12501,
			ok:     false,
		},
		{
			name:   "exact face value is accepted",
			amount: 12500,
			ok:     true,
		},
		{
			name:   "partial amount is accepted",
			amount: 5000,
			ok:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewSession("sess-1")
			ctx := context.Background()

			require.NoError(t, sess.Lookup(ctx, activeVoucher(12500)))
			require.NoError(t, sess.Confirm(ctx))

			committed := false
			err := sess.Finalize(ctx, tt.amount, func(ctx context.Context, id string, info entity.RedemptionInfo) error {
				committed = true
				return nil
			})

			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, StateFinalizado, sess.State())
				assert.True(t, committed)
			} else {
				assert.ErrorIs(t, err, ErrGuardFailed)
				assert.Equal(t, StateValor, sess.State(), "a rejected amount leaves the session at valor")
				assert.False(t, committed, "nothing may be persisted on a rejected amount")
			}
		})
	}
}

func TestSession_CommitFailureDropsBackToValor(t *testing.T) {
	sess := NewSession("sess-1")
	ctx := context.Background()

	require.NoError(t, sess.Lookup(ctx, activeVoucher(12500)))
	require.NoError(t, sess.Confirm(ctx))

	commitErr := errors.New("disk full")
	err := sess.Finalize(ctx, 12500, func(ctx context.Context, id string, info entity.RedemptionInfo) error {
		return commitErr
	})

	assert.ErrorIs(t, err, commitErr)
	assert.Equal(t, StateValor, sess.State())
	assert.False(t, sess.Voucher().IsRedeemed(), "snapshot stays emitido when commit fails")

	// Operator can retry after the storage recovers
	require.NoError(t, sess.Finalize(ctx, 12500, func(ctx context.Context, id string, info entity.RedemptionInfo) error {
		return nil
	}))
	assert.Equal(t, StateFinalizado, sess.State())
}

func TestSession_ResetClearsSnapshot(t *testing.T) {
	sess := NewSession("sess-1")
	ctx := context.Background()

	require.NoError(t, sess.Lookup(ctx, activeVoucher(12500)))
	require.NoError(t, sess.Confirm(ctx))

	require.NoError(t, sess.Reset(ctx))
	assert.Equal(t, StateEntrada, sess.State())
	assert.Nil(t, sess.Voucher())
	assert.Equal(t, money.Centavos(0), sess.Amount())
}

func TestSession_ResetFromEntradaIsNoop(t *testing.T) {
	sess := NewSession("sess-1")

	require.NoError(t, sess.Reset(context.Background()))
	assert.Equal(t, StateEntrada, sess.State())
}
