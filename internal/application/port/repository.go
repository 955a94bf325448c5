// Package port defines the interfaces the application services depend on.
// Repositories and external collaborators are injected so tests can
// substitute in-memory fakes.
package port

import (
	"context"

	"github.com/farmace/beneficios/internal/domain/entity"
)

// VoucherRepository is the durable voucher record store
type VoucherRepository interface {
	// Save inserts or overwrites a record by id. The record is written
	// whole or not at all; storage failures are surfaced, never swallowed.
	Save(ctx context.Context, voucher *entity.VoucherEmitido) error

	// GetByID returns the record or repository.ErrVoucherNotFound
	GetByID(ctx context.Context, id string) (*entity.VoucherEmitido, error)

	// ListAll re-reads the full ordered record list from durable storage
	ListAll(ctx context.Context) ([]*entity.VoucherEmitido, error)

	// FindByPartner returns records whose parceiro equals name,
	// case-sensitive exact match
	FindByPartner(ctx context.Context, name string) ([]*entity.VoucherEmitido, error)

	// MarkRedeemed transitions a record to resgatado. Fails with
	// repository.ErrVoucherNotFound if absent and
	// repository.ErrAlreadyRedeemed if already consumed; redeeming twice
	// is an error, not a no-op.
	MarkRedeemed(ctx context.Context, id string, info entity.RedemptionInfo) error
}

// NotificationRepository is the HR request notification store
type NotificationRepository interface {
	ListAll(ctx context.Context) ([]*entity.NotificacaoSolicitacao, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Save(ctx context.Context, n *entity.NotificacaoSolicitacao) error
}
