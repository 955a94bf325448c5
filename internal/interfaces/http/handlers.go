package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/farmace/beneficios/internal/application/service"
	"github.com/farmace/beneficios/internal/domain/entity"
	"github.com/farmace/beneficios/internal/domain/money"
	"github.com/farmace/beneficios/internal/domain/redemption"
	"github.com/farmace/beneficios/internal/repository"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	issuance      *service.IssuanceService
	redemption    *service.RedemptionService
	invoices      *service.InvoiceService
	notifications *service.NotificationService
	vouchers      VoucherLister
	logger        *zap.Logger
}

// VoucherLister reads the full voucher record list
type VoucherLister interface {
	ListAll(ctx context.Context) ([]*entity.VoucherEmitido, error)
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	issuance *service.IssuanceService,
	redemption *service.RedemptionService,
	invoices *service.InvoiceService,
	notifications *service.NotificationService,
	vouchers VoucherLister,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		issuance:      issuance,
		redemption:    redemption,
		invoices:      invoices,
		notifications: notifications,
		vouchers:      vouchers,
		logger:        logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// IssueVoucherRequest is the issuance request body. Valor amounts are
// resolved from the catalog, never from the client.
type IssueVoucherRequest struct {
	Matricula      string   `json:"matricula"`
	Nome           string   `json:"nome" binding:"required"`
	CPF            string   `json:"cpf"`
	DataNascimento string   `json:"dataNascimento"`
	Email          string   `json:"email" binding:"required"`
	Beneficios     []string `json:"beneficios" binding:"required"`
	Observacoes    string   `json:"observacoes"`
}

// LookupRequest carries the scanned or typed voucher code
type LookupRequest struct {
	Codigo string `json:"codigo" binding:"required"`
}

// FinalizeRequest carries the tendered amount in reais
type FinalizeRequest struct {
	Valor float64 `json:"valor" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// IssueVoucher handles POST /api/vouchers
func (h *Handlers) IssueVoucher(c *gin.Context) {
	var req IssueVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.issuance.Issue(c.Request.Context(), service.IssueRequest{
		Colaborador: entity.Colaborador{
			Matricula:      req.Matricula,
			Nome:           req.Nome,
			CPF:            req.CPF,
			DataNascimento: req.DataNascimento,
			Email:          req.Email,
		},
		BenefitIDs:  req.Beneficios,
		Observacoes: req.Observacoes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	// Delivery problems do not fail issuance; surface them as a warning
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data: gin.H{
			"voucher":    result.Voucher,
			"deliveryId": result.DeliveryID,
		},
		Warning: result.DeliveryWarning,
	})
}

// ListVouchers handles GET /api/vouchers
func (h *Handlers) ListVouchers(c *gin.Context) {
	records, err := h.vouchers.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list vouchers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve vouchers"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: records})
}

// OpenSession handles POST /api/redemption/sessions
func (h *Handlers) OpenSession(c *gin.Context) {
	sess := h.redemption.Open(c.Request.Context())
	c.JSON(http.StatusCreated, Response{Success: true, Data: sess})
}

// GetSession handles GET /api/redemption/sessions/:id
func (h *Handlers) GetSession(c *gin.Context) {
	sess, err := h.redemption.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: sess})
}

// LookupVoucher handles POST /api/redemption/sessions/:id/lookup
func (h *Handlers) LookupVoucher(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	sess, err := h.redemption.Lookup(c.Request.Context(), c.Param("id"), req.Codigo)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: sess})
}

// ConfirmRedemption handles POST /api/redemption/sessions/:id/confirm
func (h *Handlers) ConfirmRedemption(c *gin.Context) {
	sess, err := h.redemption.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: sess})
}

// FinalizeRedemption handles POST /api/redemption/sessions/:id/finalize
func (h *Handlers) FinalizeRedemption(c *gin.Context) {
	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	sess, err := h.redemption.Finalize(c.Request.Context(), c.Param("id"), money.FromReais(req.Valor))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: sess})
}

// ResetSession handles POST /api/redemption/sessions/:id/reset
func (h *Handlers) ResetSession(c *gin.Context) {
	sess, err := h.redemption.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: sess})
}

// PartnerInvoice handles GET /api/invoices/:partnerID. With ?format=xlsx
// the workbook is streamed as an attachment; otherwise JSON.
func (h *Handlers) PartnerInvoice(c *gin.Context) {
	partnerID := c.Param("partnerID")

	if c.Query("format") == "xlsx" {
		workbook, err := h.invoices.ExportXLSX(c.Request.Context(), partnerID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		filename := fmt.Sprintf("fatura-%s.xlsx", partnerID)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
		return
	}

	invoice, err := h.invoices.ForPartner(c.Request.Context(), partnerID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// ListNotifications handles GET /api/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	list, err := h.notifications.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve notifications"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: list})
}

// UnreadCount handles GET /api/notifications/unread_count
func (h *Handlers) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to count unread notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"unread": count}})
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// MarkAllNotificationsRead handles POST /api/notifications/read_all
func (h *Handlers) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context()); err != nil {
		h.logger.Error("Failed to mark notifications read", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// writeError maps domain and service errors onto HTTP status codes
func (h *Handlers) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrNoBenefits),
		errors.Is(err, service.ErrUnknownBenefit),
		errors.Is(err, service.ErrMissingEmail),
		errors.Is(err, service.ErrInvalidCPF),
		errors.Is(err, service.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrVoucherNotFound),
		errors.Is(err, repository.ErrNotificationNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrPartnerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyRedeemed),
		errors.Is(err, service.ErrVoucherExpired),
		errors.Is(err, redemption.ErrInvalidTransition):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(status, Response{Success: false, Error: "internal error"})
		return
	}

	c.JSON(status, Response{Success: false, Error: err.Error()})
}
