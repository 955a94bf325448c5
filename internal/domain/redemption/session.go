package redemption

import (
	"context"
	"time"

	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/money"
)

// CommitFunc persists the redemption when the flow reaches finalizado.
// It is the single mutation point for the voucher record.
type CommitFunc func(ctx context.Context, voucherID string, info entity.RedemptionInfo) error

// Session is one operator's pass through the scanner flow. It holds a
// snapshot of the looked-up voucher and the tendered amount; nothing is
// persisted until Finalize commits.
type Session struct {
	ID        string
	CreatedAt time.Time

	flow    Builder
	machine StateMachine
	voucher *entity.VoucherEmitido
	amount  money.Centavos
}

// NewSession creates a session at the entrada stage with the canonical
// scanner flow configured.
func NewSession(id string) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
	}

	flow := NewBuilder()
	flow.Configure(StateEntrada).
		Permit(TriggerLookup, StateDados)
	flow.Configure(StateDados).
		// Confirm is only reachable for a voucher that has not been used;
		// for a used voucher the only way out is reset
		PermitIf(TriggerConfirm, StateValor, func(ctx context.Context) bool {
			return s.voucher != nil && !s.voucher.IsRedeemed()
		}).
		Permit(TriggerReset, StateEntrada)
	flow.Configure(StateValor).
		PermitIf(TriggerFinalize, StateFinalizado, func(ctx context.Context) bool {
			return s.voucher != nil && s.amount > 0 && s.amount <= s.voucher.Valor
		}).
		Permit(TriggerReset, StateEntrada)
	flow.Configure(StateFinalizado).
		Permit(TriggerReset, StateEntrada)

	s.flow = flow
	s.machine = flow.Build(StateEntrada)
	return s
}

// State returns the current stage of the flow
func (s *Session) State() State {
	return s.machine.State()
}

// Voucher returns the looked-up voucher snapshot, nil before lookup
func (s *Session) Voucher() *entity.VoucherEmitido {
	return s.voucher
}

// Amount returns the tendered amount entered by the operator
func (s *Session) Amount() money.Centavos {
	return s.amount
}

// Lookup attaches the resolved voucher and advances to dados. The voucher
// may already be redeemed; the dados stage shows it either way so the
// operator sees why confirmation is not offered.
func (s *Session) Lookup(ctx context.Context, voucher *entity.VoucherEmitido) error {
	if err := s.machine.Fire(ctx, TriggerLookup); err != nil {
		return err
	}
	s.voucher = voucher
	return nil
}

// Confirm accepts the displayed voucher details and moves to amount entry.
// Fails with ErrGuardFailed when the voucher was already used.
func (s *Session) Confirm(ctx context.Context) error {
	return s.machine.Fire(ctx, TriggerConfirm)
}

// Finalize records the tendered amount and commits the redemption. An
// amount outside (0, voucher.Valor] blocks the transition and leaves the
// session at valor. A commit failure also drops the session back to valor
// so the operator can retry.
func (s *Session) Finalize(ctx context.Context, amount money.Centavos, commit CommitFunc) error {
	s.amount = amount
	if err := s.machine.Fire(ctx, TriggerFinalize); err != nil {
		return err
	}

	info := entity.RedemptionInfo{
		Timestamp:      time.Now(),
		ValorFornecido: amount,
	}
	if commit != nil {
		if err := commit(ctx, s.voucher.ID, info); err != nil {
			s.machine = s.flow.Build(StateValor)
			return err
		}
	}

	// The snapshot mirrors what was just persisted so the caller's view
	// shows the consumed record
	s.voucher.Status = entity.StatusResgatado
	s.voucher.DataResgate = info.DataResgate()
	s.voucher.HoraResgate = info.HoraResgate()
	fornecido := info.ValorFornecido
	s.voucher.ValorResgatado = &fornecido
	return nil
}

// Reset returns the session to entrada from any state. It never alters an
// already-persisted record.
func (s *Session) Reset(ctx context.Context) error {
	// entrada has no reset edge configured; rebuilding gets the same result
	if s.machine.State() != StateEntrada {
		if err := s.machine.Fire(ctx, TriggerReset); err != nil {
			return err
		}
	}
	s.voucher = nil
	s.amount = 0
	return nil
}
