package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/gl_posting_engine/internal/apperrors"
	"github.com/SscSPs/gl_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/gl_posting_engine/internal/utils/accounting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/SscSPs/gl_posting_engine/posting"

// Values of the outcome attribute on gl.postings.
const (
	outcomePosted    = "posted"
	outcomePending   = "pending"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// postingEngine implements the PostingEngineSvc interface
type postingEngine struct {
	BaseService
	transactionRepo portsrepo.TransactionStore
	txManager       portsrepo.TransactionManager

	tracer   trace.Tracer
	postings metric.Int64Counter
}

// EngineOption is a functional option for configuring the posting engine
type EngineOption func(*engineConfig)

type engineConfig struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(c *engineConfig) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) EngineOption {
	return func(c *engineConfig) {
		c.meterProvider = mp
	}
}

// NewPostingEngine creates the posting engine. It fails only when the
// metric instruments cannot be created.
func NewPostingEngine(transactionRepo portsrepo.TransactionStore, txManager portsrepo.TransactionManager, options ...EngineOption) (portssvc.PostingEngineSvc, error) {
	cfg := engineConfig{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, option := range options {
		option(&cfg)
	}

	postings, err := cfg.meterProvider.Meter(instrumentationName).Int64Counter(
		"gl.postings",
		metric.WithDescription("GL posting attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gl.postings counter: %w", err)
	}

	return &postingEngine{
		BaseService:     newBaseService(),
		transactionRepo: transactionRepo,
		txManager:       txManager,
		tracer:          cfg.tracerProvider.Tracer(instrumentationName),
		postings:        postings,
	}, nil
}

var _ portssvc.PostingEngineSvc = (*postingEngine)(nil)

func (e *postingEngine) CreateAndPostTransaction(ctx context.Context, req domain.PostingRequest, autoPost bool) (string, error) {
	ctx, span := e.tracer.Start(ctx, "gl.CreateAndPostTransaction", trace.WithAttributes(
		attribute.String("gl.source_module", req.SourceModule),
		attribute.String("gl.source_transaction_type", req.SourceTransactionType),
		attribute.Bool("gl.auto_post", autoPost),
	))
	defer span.End()

	logger := e.GetLogger(ctx).With(
		slog.String("source_module", req.SourceModule),
		slog.String("source_transaction_id", req.SourceTransactionID),
		slog.String("source_transaction_type", req.SourceTransactionType),
	)

	if err := validatePostingRequest(req); err != nil {
		e.record(ctx, span, outcomeRejected, err)
		logger.Warn("Posting rejected", slog.String("error", err.Error()))
		return "", err
	}

	existing, err := e.transactionRepo.FindTransactionBySource(ctx, req.SourceModule, req.SourceTransactionID)
	switch {
	case err == nil:
		e.record(ctx, span, outcomeDuplicate, nil)
		logger.Debug("Source event already posted", slog.String("transaction_id", existing.TransactionID))
		return existing.TransactionID, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		err = apperrors.NewPersistenceError("find transaction by source", err)
		e.record(ctx, span, outcomeFailed, err)
		logger.Error("Idempotency check failed", slog.String("error", err.Error()))
		return "", err
	}

	now := e.Now()
	txn, entries := e.newTransaction(req, autoPost, now)
	var deltas []domain.BalanceDelta
	if autoPost {
		deltas = accounting.NetDeltas(entries)
	}

	err = e.txManager.RunInTx(ctx, func(ctx context.Context, w portsrepo.LedgerWriter) error {
		if err := w.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		if err := w.InsertEntries(ctx, entries); err != nil {
			return err
		}
		if len(deltas) > 0 {
			return w.ApplyBalanceDeltas(ctx, deltas, req.CreatedBy, now)
		}
		return nil
	})
	if errors.Is(err, apperrors.ErrDuplicateSourceEvent) {
		// Lost the race against a concurrent caller; the winner's row is the answer.
		id, lookupErr := e.resolveDuplicate(ctx, req)
		if lookupErr != nil {
			e.record(ctx, span, outcomeFailed, lookupErr)
			logger.Error("Failed to resolve duplicate source event", slog.String("error", lookupErr.Error()))
			return "", lookupErr
		}
		e.record(ctx, span, outcomeDuplicate, nil)
		logger.Warn("Concurrent posting of source event resolved to existing transaction", slog.String("transaction_id", id))
		return id, nil
	}
	if err != nil {
		err = apperrors.NewPersistenceError("post transaction", err)
		e.record(ctx, span, outcomeFailed, err)
		logger.Error("Failed to persist transaction", slog.String("error", err.Error()))
		return "", err
	}

	outcome := outcomePosted
	if !autoPost {
		outcome = outcomePending
	}
	e.record(ctx, span, outcome, nil)
	span.SetAttributes(attribute.String("gl.transaction_id", txn.TransactionID))
	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("status", string(txn.Status)),
		slog.Int("entries", len(entries)))
	return txn.TransactionID, nil
}

func (e *postingEngine) PostPendingTransaction(ctx context.Context, transactionID, actor string) (string, error) {
	ctx, span := e.tracer.Start(ctx, "gl.PostPendingTransaction", trace.WithAttributes(
		attribute.String("gl.transaction_id", transactionID),
	))
	defer span.End()
	logger := e.GetLogger(ctx).With(slog.String("transaction_id", transactionID))

	// Entries are immutable, so they can be read outside the unit of work.
	entries, err := e.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		err = apperrors.NewPersistenceError("find entries", err)
		e.record(ctx, span, outcomeFailed, err)
		return "", err
	}
	deltas := accounting.NetDeltas(entries)

	alreadyPosted := false
	now := e.Now()
	err = e.txManager.RunInTx(ctx, func(ctx context.Context, w portsrepo.LedgerWriter) error {
		txn, err := w.LockTransaction(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.Status == domain.Posted {
			alreadyPosted = true
			return nil
		}
		if len(deltas) > 0 {
			if err := w.ApplyBalanceDeltas(ctx, deltas, actor, now); err != nil {
				return err
			}
		}
		return w.UpdateTransactionStatus(ctx, transactionID, domain.Posted, actor, now)
	})
	if errors.Is(err, apperrors.ErrNotFound) {
		e.record(ctx, span, outcomeRejected, err)
		return "", err
	}
	if err != nil {
		err = apperrors.NewPersistenceError("post pending transaction", err)
		e.record(ctx, span, outcomeFailed, err)
		logger.Error("Failed to post pending transaction", slog.String("error", err.Error()))
		return "", err
	}

	if alreadyPosted {
		e.record(ctx, span, outcomeDuplicate, nil)
		logger.Debug("Transaction already posted")
		return transactionID, nil
	}

	e.record(ctx, span, outcomePosted, nil)
	logger.Info("Pending transaction posted", slog.String("actor", actor))
	return transactionID, nil
}

func (e *postingEngine) newTransaction(req domain.PostingRequest, autoPost bool, now time.Time) (domain.Transaction, []domain.Entry) {
	status := domain.Pending
	if autoPost {
		status = domain.Posted
	}
	date := req.Date
	if date.IsZero() {
		date = now
	}

	txn := domain.Transaction{
		TransactionID:         e.NewID(),
		TransactionDate:       date,
		SourceModule:          req.SourceModule,
		SourceTransactionID:   req.SourceTransactionID,
		SourceTransactionType: req.SourceTransactionType,
		Description:           req.Description,
		Status:                status,
		BranchID:              req.BranchID,
		Metadata:              req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.CreatedBy,
		},
	}

	entries := make([]domain.Entry, len(req.Entries))
	for i, entry := range req.Entries {
		entry.EntryID = e.NewID()
		entry.TransactionID = txn.TransactionID
		entries[i] = entry
	}
	txn.Entries = entries
	return txn, entries
}

func (e *postingEngine) resolveDuplicate(ctx context.Context, req domain.PostingRequest) (string, error) {
	existing, err := e.transactionRepo.FindTransactionBySource(ctx, req.SourceModule, req.SourceTransactionID)
	if err != nil {
		return "", apperrors.NewPersistenceError("find transaction by source", err)
	}
	return existing.TransactionID, nil
}

func (e *postingEngine) record(ctx context.Context, span trace.Span, outcome string, err error) {
	e.postings.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	span.SetAttributes(attribute.String("gl.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
}

// validatePostingRequest runs every check that needs no I/O.
func validatePostingRequest(req domain.PostingRequest) error {
	if req.SourceModule == "" || req.SourceTransactionID == "" {
		return fmt.Errorf("%w: source module and source transaction id are required", apperrors.ErrValidation)
	}
	if req.SourceTransactionType == "" {
		return fmt.Errorf("%w: source transaction type is required", apperrors.ErrValidation)
	}
	if err := accounting.ValidateEntries(req.Entries); err != nil {
		return err
	}
	return accounting.ValidateBalance(req.Entries)
}
