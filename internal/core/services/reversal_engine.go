package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/gl_posting_engine/internal/utils/accounting"
)

// Metadata keys written on every reversal transaction.
const (
	MetaReversalReason              = "reversal_reason"
	MetaOriginalSourceTransactionID = "original_source_transaction_id"
	MetaOriginalTransactionID       = "original_transaction_id"
)

const reversalTypeSuffix = "_reversal"

// reversalEngine implements the ReversalEngineSvc interface
type reversalEngine struct {
	BaseService
	builder         portssvc.JournalBuilderSvc
	engine          portssvc.PostingEngineSvc
	transactionRepo portsrepo.TransactionReader
}

// NewReversalEngine creates a new reversal engine
func NewReversalEngine(builder portssvc.JournalBuilderSvc, engine portssvc.PostingEngineSvc, transactionRepo portsrepo.TransactionReader) portssvc.ReversalEngineSvc {
	return &reversalEngine{
		BaseService:     newBaseService(),
		builder:         builder,
		engine:          engine,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.ReversalEngineSvc = (*reversalEngine)(nil)

func (r *reversalEngine) Reverse(ctx context.Context, ev domain.ReversalEvent, reason string) (string, error) {
	if ev == nil {
		return "", fmt.Errorf("%w: reversal event is required", apperrors.ErrValidation)
	}
	if reason == "" {
		reason = ev.ReversalReason()
	}

	req, err := r.builder.Build(ctx, ev)
	if err != nil {
		return "", err
	}

	metadata := cloneMetadata(req.Metadata)
	metadata[MetaReversalReason] = reason
	metadata[MetaOriginalSourceTransactionID] = ev.OriginalSourceTransactionID()

	original, err := r.transactionRepo.FindTransactionBySource(ctx, ev.SourceModule(), ev.OriginalSourceTransactionID())
	switch {
	case err == nil:
		if err := r.matchOriginal(ctx, original, req.Entries); err != nil {
			return "", err
		}
		metadata[MetaOriginalTransactionID] = original.TransactionID
	case errors.Is(err, apperrors.ErrNotFound):
		// Producers may reverse events whose posting was best-effort and failed.
		r.LogDebug(ctx, "Original transaction not found for reversal",
			slog.String("source_module", ev.SourceModule()),
			slog.String("original_source_transaction_id", ev.OriginalSourceTransactionID()))
	default:
		return "", apperrors.NewPersistenceError("find original transaction", err)
	}
	req.Metadata = metadata

	return r.engine.CreateAndPostTransaction(ctx, req, true)
}

func (r *reversalEngine) ReverseTransaction(ctx context.Context, transactionID, reason, actor string) (string, error) {
	original, err := r.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		return "", apperrors.NewPersistenceError("find transaction", err)
	}
	if domain.IsReversalSourceID(original.SourceTransactionID) {
		return "", fmt.Errorf("%w: transaction %s is itself a reversal", apperrors.ErrConflict, transactionID)
	}
	if original.Status != domain.Posted {
		return "", fmt.Errorf("%w: transaction %s is %s, only posted transactions can be reversed", apperrors.ErrConflict, transactionID, original.Status)
	}

	entries, err := r.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return "", apperrors.NewPersistenceError("find entries", err)
	}

	req := domain.PostingRequest{
		Date:                  r.Now(),
		SourceModule:          original.SourceModule,
		SourceTransactionID:   domain.ReversalSourceID(original.SourceTransactionID),
		SourceTransactionType: original.SourceTransactionType + reversalTypeSuffix,
		Description:           "Reversal of " + original.Description,
		Entries:               accounting.SwapSides(entries),
		CreatedBy:             actor,
		BranchID:              original.BranchID,
		Metadata: map[string]any{
			MetaReversalReason:              reason,
			MetaOriginalSourceTransactionID: original.SourceTransactionID,
			MetaOriginalTransactionID:       original.TransactionID,
		},
	}

	return r.engine.CreateAndPostTransaction(ctx, req, true)
}

// matchOriginal requires the reversal lines to cancel the original's net
// movement on every account they touch, and on no other account.
func (r *reversalEngine) matchOriginal(ctx context.Context, original *domain.Transaction, reversal []domain.Entry) error {
	entries, err := r.transactionRepo.FindEntriesByTransactionID(ctx, original.TransactionID)
	if err != nil {
		return apperrors.NewPersistenceError("find original entries", err)
	}

	combined := make([]domain.Entry, 0, len(entries)+len(reversal))
	combined = append(combined, entries...)
	combined = append(combined, reversal...)
	if residual := accounting.NetDeltas(combined); len(residual) > 0 {
		return fmt.Errorf("%w: reversal does not cancel original transaction %s (account %s left at %s)",
			apperrors.ErrValidation, original.TransactionID, residual[0].AccountCode, residual[0].Delta.String())
	}
	return nil
}

func cloneMetadata(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src)+3)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
