package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/event"
	"go.uber.org/zap"
)

// NotificationRepository implements port.NotificationRepository on SQLite.
// It shares the store + refresh-broadcast pattern with the voucher store;
// only the lida flag is ever mutated after insert.
type NotificationRepository struct {
	db         *sql.DB
	dispatcher event.Dispatcher
	logger     *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, dispatcher event.Dispatcher, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{
		db:         db,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

const notificationColumns = `
	id, matricula, colaborador, solicitacao, status, data_solicitacao, lida,
	setor, cargo, descricao_solicitacao, justificativa_avaliacao,
	avaliador_nome, data_avaliacao
`

// ListAll returns all notifications in insertion order
func (r *NotificationRepository) ListAll(ctx context.Context) ([]*entity.NotificacaoSolicitacao, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.NotificacaoSolicitacao
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread returns how many notifications have lida = false
func (r *NotificationRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications WHERE lida = 0").Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count unread notifications", zap.Error(err))
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead sets the lida flag on one notification
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE notifications SET lida = 1 WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to mark notification read", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotificationNotFound, id)
	}

	r.broadcast(ctx)
	return nil
}

// MarkAllRead sets the lida flag on every notification
func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE notifications SET lida = 1 WHERE lida = 0"); err != nil {
		r.logger.Error("Failed to mark all notifications read", zap.Error(err))
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	r.broadcast(ctx)
	return nil
}

// Save inserts or overwrites a notification by id
func (r *NotificationRepository) Save(ctx context.Context, n *entity.NotificacaoSolicitacao) error {
	query := `
		INSERT INTO notifications (
			id, matricula, colaborador, solicitacao, status, data_solicitacao,
			lida, setor, cargo, descricao_solicitacao, justificativa_avaliacao,
			avaliador_nome, data_avaliacao
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			lida = excluded.lida,
			justificativa_avaliacao = excluded.justificativa_avaliacao,
			avaliador_nome = excluded.avaliador_nome,
			data_avaliacao = excluded.data_avaliacao
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.Matricula,
		n.Colaborador,
		string(n.Solicitacao),
		string(n.Status),
		n.DataSolicitacao,
		n.Lida,
		n.Setor,
		n.Cargo,
		n.DescricaoSolicitacao,
		n.JustificativaAvaliacao,
		n.AvaliadorNome,
		n.DataAvaliacao,
	)
	if err != nil {
		r.logger.Error("Failed to save notification", zap.String("id", n.ID), zap.Error(err))
		return fmt.Errorf("failed to save notification: %w", err)
	}

	r.broadcast(ctx)
	return nil
}

func (r *NotificationRepository) broadcast(ctx context.Context) {
	r.dispatcher.DispatchAsync(ctx, event.New(event.TypeNotificationStoreChanged, "", nil))
}

func scanNotification(rows *sql.Rows) (*entity.NotificacaoSolicitacao, error) {
	var n entity.NotificacaoSolicitacao
	var solicitacao, status string

	err := rows.Scan(
		&n.ID,
		&n.Matricula,
		&n.Colaborador,
		&solicitacao,
		&status,
		&n.DataSolicitacao,
		&n.Lida,
		&n.Setor,
		&n.Cargo,
		&n.DescricaoSolicitacao,
		&n.JustificativaAvaliacao,
		&n.AvaliadorNome,
		&n.DataAvaliacao,
	)
	if err != nil {
		return nil, err
	}

	n.Solicitacao = entity.RequestType(solicitacao)
	n.Status = entity.RequestStatus(status)
	return &n, nil
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
