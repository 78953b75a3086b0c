package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/gl_posting_engine/internal/dto"
	"github.com/SscSPs/gl_posting_engine/internal/middleware"
	"github.com/SscSPs/gl_posting_engine/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// getTransaction handles GET /gl/transactions/:id.
func (h *glHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", c.Param("id")))

	txn, err := h.glService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// postPendingTransaction handles POST /gl/transactions/:id/post.
func (h *glHandler) postPendingTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", c.Param("id")))
	var req dto.ActorRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.PostPendingTransaction(ctx, c.Param("id"), req.Actor)
	if err != nil {
		respondError(c, logger, err, "Failed to post pending transaction")
		return
	}

	logger.Info("Pending transaction posted", slog.String("actor", req.Actor))
	c.JSON(http.StatusOK, dto.PostingResponse{TransactionID: id})
}

// reverseTransaction handles POST /gl/transactions/:id/reverse.
func (h *glHandler) reverseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", c.Param("id")))
	var req dto.ReverseTransactionRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.glService.ReverseTransaction(ctx, c.Param("id"), req.Reason, req.Actor)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse transaction")
		return
	}

	logger.Info("Transaction reversed", slog.String("reversal_id", id))
	c.JSON(http.StatusCreated, dto.PostingResponse{TransactionID: id})
}

// getAccount handles GET /gl/accounts/:code.
func (h *glHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_code", c.Param("code")))

	account, err := h.glService.GetAccountByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}

	normal, err := accounting.NormalBalance(account.AccountType, account.Balance)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account, normal))
}

// deactivateAccount handles POST /gl/accounts/:code/deactivate.
func (h *glHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_code", c.Param("code")))
	var req dto.ActorRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	if err := h.glService.DeactivateAccount(c.Request.Context(), c.Param("code"), req.Actor); err != nil {
		respondError(c, logger, err, "Failed to deactivate account")
		return
	}

	logger.Info("Account deactivated", slog.String("actor", req.Actor))
	c.Status(http.StatusNoContent)
}
