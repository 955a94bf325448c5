package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/money"
	"github.com/farmace/beneficios/internal/domain/redemption"
	"github.com/farmace/beneficios/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionView is the caller-facing snapshot of a redemption session
type SessionView struct {
	ID        string                 `json:"id"`
	State     redemption.State       `json:"state"`
	Voucher   *entity.VoucherEmitido `json:"voucher,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// RedemptionService owns the in-memory scanner sessions and is the only
// path that consumes vouchers. Sessions are single-process state, matching
// the one-operator-per-counter model.
type RedemptionService struct {
	vouchers port.VoucherRepository
	logger   *zap.Logger
	ttl      time.Duration

	// enforceValidity rejects expired vouchers at confirmation. Off by
	// default: an expired-but-unredeemed voucher stays redeemable, which is
	// the established counter behavior.
	enforceValidity bool

	mu       sync.Mutex
	sessions map[string]*redemption.Session

	now func() time.Time
}

// NewRedemptionService creates a new redemption service
func NewRedemptionService(vouchers port.VoucherRepository, ttl time.Duration, enforceValidity bool, logger *zap.Logger) *RedemptionService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedemptionService{
		vouchers:        vouchers,
		logger:          logger,
		ttl:             ttl,
		enforceValidity: enforceValidity,
		sessions:        make(map[string]*redemption.Session),
		now:             time.Now,
	}
}

// Open starts a new session at the entrada stage
func (s *RedemptionService) Open(ctx context.Context) *SessionView {
	sess := redemption.NewSession(uuid.NewString())

	s.mu.Lock()
	s.pruneLocked()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("Redemption session opened", zap.String("session_id", sess.ID))
	return view(sess)
}

// Get returns the current session snapshot
func (s *RedemptionService) Get(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return view(sess), nil
}

// Lookup resolves a scanned code and advances the session to dados. The
// three outcomes stay distinguishable: an unknown code returns
// repository.ErrVoucherNotFound and leaves the session at entrada; a known
// code moves to dados whether or not it was already used, so the operator
// sees why confirmation is not offered.
func (s *RedemptionService) Lookup(ctx context.Context, sessionID, codigo string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	voucher, err := s.vouchers.GetByID(ctx, codigo)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			s.logger.Info("Voucher code not found",
				zap.String("session_id", sessionID),
				zap.String("codigo", codigo))
		}
		return nil, err
	}

	if err := sess.Lookup(ctx, voucher); err != nil {
		return nil, err
	}

	s.logger.Info("Voucher looked up",
		zap.String("session_id", sessionID),
		zap.String("codigo", codigo),
		zap.String("status", voucher.Status.String()))

	return view(sess), nil
}

// Confirm accepts the displayed details and moves to amount entry. For an
// already-used voucher this fails with repository.ErrAlreadyRedeemed and
// the session stays at dados.
func (s *RedemptionService) Confirm(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if s.enforceValidity && sess.Voucher() != nil && s.isExpired(sess.Voucher()) {
		return nil, fmt.Errorf("%w: %s (validade %s)", ErrVoucherExpired, sess.Voucher().ID, sess.Voucher().DataValidade)
	}

	if err := sess.Confirm(ctx); err != nil {
		if errors.Is(err, redemption.ErrGuardFailed) {
			return nil, fmt.Errorf("%w: %s", repository.ErrAlreadyRedeemed, sess.Voucher().ID)
		}
		return nil, err
	}

	return view(sess), nil
}

// Finalize records the tendered amount and consumes the voucher. An amount
// outside (0, face value] blocks the transition; the session stays at
// valor and nothing is persisted.
func (s *RedemptionService) Finalize(ctx context.Context, sessionID string, amount money.Centavos) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	err = sess.Finalize(ctx, amount, func(ctx context.Context, voucherID string, info entity.RedemptionInfo) error {
		return s.vouchers.MarkRedeemed(ctx, voucherID, info)
	})
	if err != nil {
		if errors.Is(err, redemption.ErrGuardFailed) {
			return nil, fmt.Errorf("%w: amount must be positive and at most the face value", ErrInvalidAmount)
		}
		return nil, err
	}

	s.logger.Info("Redemption finalized",
		zap.String("session_id", sessionID),
		zap.String("voucher_id", sess.Voucher().ID),
		zap.Int64("valor_fornecido", int64(amount)))

	return view(sess), nil
}

// Reset returns the session to entrada; persisted records are untouched
func (s *RedemptionService) Reset(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Reset(ctx); err != nil {
		return nil, err
	}
	return view(sess), nil
}

func (s *RedemptionService) session(id string) (*redemption.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if time.Since(sess.CreatedAt) > s.ttl {
		delete(s.sessions, id)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// isExpired parses the display-formatted validity date; an unparseable
// date never blocks a redemption
func (s *RedemptionService) isExpired(v *entity.VoucherEmitido) bool {
	if v.DataValidade == "" {
		return false
	}
	validade, err := time.ParseInLocation("02/01/2006", v.DataValidade, time.Local)
	if err != nil {
		return false
	}
	// Valid through the whole final day
	return s.now().After(validade.AddDate(0, 0, 1))
}

func (s *RedemptionService) pruneLocked() {
	for id, sess := range s.sessions {
		if time.Since(sess.CreatedAt) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func view(sess *redemption.Session) *SessionView {
	return &SessionView{
		ID:        sess.ID,
		State:     sess.State(),
		Voucher:   sess.Voucher(),
		CreatedAt: sess.CreatedAt,
	}
}
