package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/gl_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/gl_posting_engine/internal/dto"
	"github.com/SscSPs/gl_posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// glHandler exposes the GL producer operations over HTTP.
type glHandler struct {
	glService      portssvc.GLSvcFacade
	postingTimeout time.Duration
}

func newGLHandler(svc portssvc.GLSvcFacade, postingTimeout time.Duration) *glHandler {
	return &glHandler{glService: svc, postingTimeout: postingTimeout}
}

// RegisterGLRoutes registers the producer, transaction and account routes under rg.
func RegisterGLRoutes(rg *gin.RouterGroup, svc portssvc.GLSvcFacade, postingTimeout time.Duration) {
	h := newGLHandler(svc, postingTimeout)

	gl := rg.Group("/gl")
	{
		gl.POST("/transactions", h.createTransaction)
		gl.GET("/transactions/:id", h.getTransaction)
		gl.POST("/transactions/:id/post", h.postPendingTransaction)
		gl.POST("/transactions/:id/reverse", h.reverseTransaction)

		gl.POST("/commissions", h.createCommission)
		gl.POST("/commissions/payments", h.createCommissionPayment)
		gl.POST("/commissions/reversals", h.createCommissionReversal)
		gl.POST("/commissions/paid-reversals", h.createPaidCommissionReversal)
		gl.POST("/expenses", h.createExpense)
		gl.POST("/momo", h.createMoMo)

		gl.GET("/accounts/:code", h.getAccount)
		gl.POST("/accounts/:code/deactivate", h.deactivateAccount)
	}
}

// requestContext bounds the request context with the posting timeout.
func (h *glHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.postingTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.postingTimeout)
}

// respondPosting writes 201 with the transaction id, or 202 with an empty id
// when a best-effort posting was dropped.
func (h *glHandler) respondPosting(c *gin.Context, logger *slog.Logger, transactionID string, err error, failure string) {
	if err != nil {
		respondError(c, logger, err, failure)
		return
	}
	if transactionID == "" {
		logger.Warn("GL posting skipped under best-effort policy")
		c.JSON(http.StatusAccepted, dto.PostingResponse{})
		return
	}
	logger.Info("GL posting recorded", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusCreated, dto.PostingResponse{TransactionID: transactionID})
}

// createTransaction handles POST /gl/transactions with caller-built entries.
func (h *glHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostTransactionParams
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("source_module", req.SourceModule), slog.String("source_transaction_id", req.SourceTransactionID))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.CreateAndPostTransaction(ctx, req)
	h.respondPosting(c, logger, id, err, "Failed to post transaction")
}

func (h *glHandler) createCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommissionParams
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("commission_id", req.CommissionID))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.CreateCommissionGLEntries(ctx, req)
	h.respondPosting(c, logger, id, err, "Failed to post commission")
}

func (h *glHandler) createCommissionPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommissionPaymentParams
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("commission_id", req.CommissionID))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.CreateCommissionPaymentGLEntries(ctx, req)
	h.respondPosting(c, logger, id, err, "Failed to post commission payment")
}

func (h *glHandler) createCommissionReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommissionReversalParams
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("commission_id", req.CommissionID))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.CreateCommissionReversalGLEntries(ctx, req)
	h.respondPosting(c, logger, id, err, "Failed to reverse commission")
}

func (h *glHandler) createPaidCommissionReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommissionReversalParams
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("commission_id", req.CommissionID))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.CreatePaidCommissionReversalGLEntries(ctx, req)
	h.respondPosting(c, logger, id, err, "Failed to reverse paid commission")
}

func (h *glHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExpenseParams
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("expense_id", req.ExpenseID))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.CreateExpenseGLEntries(ctx, req)
	h.respondPosting(c, logger, id, err, "Failed to post expense")
}

func (h *glHandler) createMoMo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MoMoParams
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("momo_transaction_id", req.TransactionID), slog.String("momo_type", string(req.Type)))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.CreateMoMoGLEntries(ctx, req)
	h.respondPosting(c, logger, id, err, "Failed to post mobile money transaction")
}
