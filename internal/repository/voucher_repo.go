package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/event"
	"github.com/farmace/beneficios/internal/domain/money"
	"go.uber.org/zap"
)

// VoucherRepository implements port.VoucherRepository on SQLite. Every
// successful write broadcasts a store-changed event so open views can
// refresh.
type VoucherRepository struct {
	db         *sql.DB
	dispatcher event.Dispatcher
	logger     *zap.Logger
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *sql.DB, dispatcher event.Dispatcher, logger *zap.Logger) port.VoucherRepository {
	return &VoucherRepository{
		db:         db,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

const voucherColumns = `
	id, funcionario, cpf, valor, data_resgate, hora_resgate,
	beneficios, parceiro, status, data_validade, valor_resgatado, created_at
`

// Save inserts or overwrites a record by id
func (r *VoucherRepository) Save(ctx context.Context, voucher *entity.VoucherEmitido) error {
	beneficios, err := json.Marshal(voucher.Beneficios)
	if err != nil {
		return fmt.Errorf("failed to encode beneficios: %w", err)
	}

	query := `
		INSERT INTO vouchers (
			id, funcionario, cpf, valor, data_resgate, hora_resgate,
			beneficios, parceiro, status, data_validade, valor_resgatado
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			funcionario = excluded.funcionario,
			cpf = excluded.cpf,
			valor = excluded.valor,
			data_resgate = excluded.data_resgate,
			hora_resgate = excluded.hora_resgate,
			beneficios = excluded.beneficios,
			parceiro = excluded.parceiro,
			status = excluded.status,
			data_validade = excluded.data_validade,
			valor_resgatado = excluded.valor_resgatado
	`

	var valorResgatado interface{}
	if voucher.ValorResgatado != nil {
		valorResgatado = int64(*voucher.ValorResgatado)
	}

	_, err = r.db.ExecContext(ctx, query,
		voucher.ID,
		voucher.Funcionario,
		voucher.CPF,
		int64(voucher.Valor),
		voucher.DataResgate,
		voucher.HoraResgate,
		string(beneficios),
		voucher.Parceiro,
		voucher.Status.String(),
		voucher.DataValidade,
		valorResgatado,
	)
	if err != nil {
		r.logger.Error("Failed to save voucher", zap.String("id", voucher.ID), zap.Error(err))
		return fmt.Errorf("failed to save voucher: %w", err)
	}

	r.broadcast(ctx, voucher.ID)
	return nil
}

// GetByID returns the record or ErrVoucherNotFound
func (r *VoucherRepository) GetByID(ctx context.Context, id string) (*entity.VoucherEmitido, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = ?`

	voucher, err := scanVoucher(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrVoucherNotFound, id)
	}
	if err != nil {
		r.logger.Error("Failed to get voucher", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}

	return voucher, nil
}

// ListAll re-reads the full record list from durable storage, insertion order
func (r *VoucherRepository) ListAll(ctx context.Context) ([]*entity.VoucherEmitido, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list vouchers", zap.Error(err))
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	return collectVouchers(rows)
}

// FindByPartner returns records whose parceiro equals name exactly
func (r *VoucherRepository) FindByPartner(ctx context.Context, name string) ([]*entity.VoucherEmitido, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE parceiro = ? ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		r.logger.Error("Failed to find vouchers by partner", zap.String("parceiro", name), zap.Error(err))
		return nil, fmt.Errorf("failed to find vouchers by partner: %w", err)
	}
	defer rows.Close()

	return collectVouchers(rows)
}

// MarkRedeemed transitions a record to resgatado, exactly once. The status
// check lives in the UPDATE's WHERE clause so a concurrent redemption of
// the same code cannot both succeed.
func (r *VoucherRepository) MarkRedeemed(ctx context.Context, id string, info entity.RedemptionInfo) error {
	query := `
		UPDATE vouchers
		SET status = ?, data_resgate = ?, hora_resgate = ?, valor_resgatado = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		entity.StatusResgatado.String(),
		info.DataResgate(),
		info.HoraResgate(),
		int64(info.ValorFornecido),
		id,
		entity.StatusEmitido.String(),
	)
	if err != nil {
		r.logger.Error("Failed to mark voucher redeemed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark voucher redeemed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}

	if affected == 0 {
		// Either the code does not exist or it was already consumed;
		// callers must be able to tell the two apart
		var status string
		err := r.db.QueryRowContext(ctx, "SELECT status FROM vouchers WHERE id = ?", id).Scan(&status)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: %s", ErrVoucherNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to check voucher status: %w", err)
		}
		return fmt.Errorf("%w: %s", ErrAlreadyRedeemed, id)
	}

	r.logger.Info("Voucher redeemed",
		zap.String("id", id),
		zap.Int64("valor_fornecido", int64(info.ValorFornecido)))

	r.dispatcher.DispatchAsync(ctx, event.New(event.TypeVoucherRedeemed, id, nil))
	r.broadcast(ctx, id)
	return nil
}

func (r *VoucherRepository) broadcast(ctx context.Context, voucherID string) {
	r.dispatcher.DispatchAsync(ctx, event.New(event.TypeVoucherStoreChanged, voucherID, nil))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVoucher(row rowScanner) (*entity.VoucherEmitido, error) {
	var v entity.VoucherEmitido
	var valor int64
	var beneficios string
	var valorResgatado sql.NullInt64
	var status string

	err := row.Scan(
		&v.ID,
		&v.Funcionario,
		&v.CPF,
		&valor,
		&v.DataResgate,
		&v.HoraResgate,
		&beneficios,
		&v.Parceiro,
		&status,
		&v.DataValidade,
		&valorResgatado,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Valor = money.Centavos(valor)
	v.Status = entity.VoucherStatus(status)
	if valorResgatado.Valid {
		c := money.Centavos(valorResgatado.Int64)
		v.ValorResgatado = &c
	}
	if err := json.Unmarshal([]byte(beneficios), &v.Beneficios); err != nil {
		return nil, fmt.Errorf("failed to decode beneficios for %s: %w", v.ID, err)
	}

	return &v, nil
}

func collectVouchers(rows *sql.Rows) ([]*entity.VoucherEmitido, error) {
	var vouchers []*entity.VoucherEmitido
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vouchers: %w", err)
	}
	return vouchers, nil
}

// Verify interface compliance
var _ port.VoucherRepository = (*VoucherRepository)(nil)
