package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/repository"
)

// memVoucherRepo is an in-memory port.VoucherRepository for service tests.
// It mirrors the SQLite implementation's contract, including the
// redeem-exactly-once rule.
type memVoucherRepo struct {
	mu       sync.Mutex
	records  map[string]*entity.VoucherEmitido
	order    []string
	saveErr  error
	markErr  error
	getCalls int
}

func newMemVoucherRepo() *memVoucherRepo {
	return &memVoucherRepo{records: make(map[string]*entity.VoucherEmitido)}
}

func (m *memVoucherRepo) Save(ctx context.Context, voucher *entity.VoucherEmitido) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *voucher
	if _, exists := m.records[voucher.ID]; !exists {
		m.order = append(m.order, voucher.ID)
	}
	m.records[voucher.ID] = &cp
	return nil
}

func (m *memVoucherRepo) GetByID(ctx context.Context, id string) (*entity.VoucherEmitido, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	v, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrVoucherNotFound, id)
	}
	cp := *v
	return &cp, nil
}

func (m *memVoucherRepo) ListAll(ctx context.Context) ([]*entity.VoucherEmitido, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.VoucherEmitido, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.records[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memVoucherRepo) FindByPartner(ctx context.Context, name string) ([]*entity.VoucherEmitido, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.VoucherEmitido
	for _, id := range m.order {
		if m.records[id].Parceiro == name {
			cp := *m.records[id]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memVoucherRepo) MarkRedeemed(ctx context.Context, id string, info entity.RedemptionInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	v, ok := m.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", repository.ErrVoucherNotFound, id)
	}
	if v.IsRedeemed() {
		return fmt.Errorf("%w: %s", repository.ErrAlreadyRedeemed, id)
	}
	v.Status = entity.StatusResgatado
	v.DataResgate = info.DataResgate()
	v.HoraResgate = info.HoraResgate()
	valor := info.ValorFornecido
	v.ValorResgatado = &valor
	return nil
}

var _ port.VoucherRepository = (*memVoucherRepo)(nil)

type stubCodeGenerator struct {
	err      error
	payloads []port.QRPayload
}

func (s *stubCodeGenerator) Generate(payload port.QRPayload) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.payloads = append(s.payloads, payload)
	return []byte("png"), nil
}

type stubRenderer struct {
	err      error
	requests []port.RenderRequest
}

func (s *stubRenderer) Render(req port.RenderRequest) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.requests = append(s.requests, req)
	return []byte("pdf"), nil
}

type stubEmail struct {
	err        error
	deliveryID string
	sent       []*entity.VoucherEmitido
}

func (s *stubEmail) SendVoucher(ctx context.Context, voucher *entity.VoucherEmitido, colaborador *entity.Colaborador, pdf []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, voucher)
	if s.deliveryID == "" {
		return "delivery-1", nil
	}
	return s.deliveryID, nil
}

var (
	_ port.CodeGenerator    = (*stubCodeGenerator)(nil)
	_ port.DocumentRenderer = (*stubRenderer)(nil)
	_ port.EmailDelivery    = (*stubEmail)(nil)
)

// memNotificationRepo is an in-memory port.NotificationRepository
type memNotificationRepo struct {
	mu      sync.Mutex
	records map[string]*entity.NotificacaoSolicitacao
	order   []string
	err     error
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{records: make(map[string]*entity.NotificacaoSolicitacao)}
}

func (m *memNotificationRepo) ListAll(ctx context.Context) ([]*entity.NotificacaoSolicitacao, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*entity.NotificacaoSolicitacao, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.records[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memNotificationRepo) CountUnread(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, n := range m.records {
		if !n.Lida {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) MarkRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", repository.ErrNotificationNotFound, id)
	}
	n.Lida = true
	return nil
}

func (m *memNotificationRepo) MarkAllRead(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.records {
		n.Lida = true
	}
	return nil
}

func (m *memNotificationRepo) Save(ctx context.Context, n *entity.NotificacaoSolicitacao) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *n
	if _, exists := m.records[n.ID]; !exists {
		m.order = append(m.order, n.ID)
	}
	m.records[n.ID] = &cp
	return nil
}

var _ port.NotificationRepository = (*memNotificationRepo)(nil)
