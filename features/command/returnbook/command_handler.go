package returnbook

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/shell"
	"github.com/readhall/circulation-go/storage"
)

// Store defines the interface needed by the CommandHandler for storage operations.
type Store interface {
	GetActiveRental(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (core.BookRental, error)
	GetBookByID(ctx context.Context, bookID uuid.UUID) (core.Book, error)
	CloseRental(
		ctx context.Context,
		rentalID uuid.UUID,
		expectedRentalVersion uint,
		bookID uuid.UUID,
		expectedBookVersion uint,
		returnedAt time.Time,
		fineCents int64,
	) error
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
type CommandHandler struct {
	store            Store
	retryOptions     []shell.RetryOption
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithMetrics sets the metrics collector for the CommandHandler.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(h *CommandHandler) {
		h.metricsCollector = collector
	}
}

// WithTracing sets the tracing collector for the CommandHandler.
func WithTracing(collector shell.TracingCollector) Option {
	return func(h *CommandHandler) {
		h.tracingCollector = collector
	}
}

// WithContextualLogging sets the contextual logger for the CommandHandler.
func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.contextualLogger = logger
	}
}

// WithLogging sets the basic logger for the CommandHandler.
func WithLogging(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	start := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, h.tracingCollector, commandType)
	shell.LogCommandStart(ctx, h.logger, h.contextualLogger, commandType)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	duration := time.Since(start)

	if err != nil {
		shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusError, duration)
		shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusError, duration, err)
		shell.LogCommandError(ctx, h.logger, h.contextualLogger, commandType, err)

		return shell.NewErrorResult(retryMetrics), err
	}

	shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusSuccess, duration)
	shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogCommandSuccess(ctx, h.logger, h.contextualLogger, commandType, shell.StatusSuccess, duration)

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	s, loadErr := h.loadState(ctx, command)
	if loadErr != nil {
		return loadErr
	}

	result := Decide(s, command)

	if err := result.HasError(); err != nil {
		return err
	}

	fineCents := s.Rental.OverdueFineAt(command.OccurredAt)

	return h.store.CloseRental(
		ctx,
		s.Rental.ID, s.Rental.Version,
		s.Book.ID, s.Book.Version,
		command.OccurredAt, fineCents,
	)
}

func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	var s State

	rental, rentalErr := h.store.GetActiveRental(ctx, command.UserID, command.BookID)
	switch {
	case rentalErr == nil:
		s.RentalFound = true
		s.Rental = rental
	case errors.Is(rentalErr, storage.ErrNotFound):
		return s, nil // Decide rejects the missing rental
	default:
		return State{}, rentalErr
	}

	book, bookErr := h.store.GetBookByID(ctx, command.BookID)
	switch {
	case bookErr == nil:
		s.BookFound = true
		s.Book = book
	case errors.Is(bookErr, storage.ErrNotFound):
		return s, nil
	default:
		return State{}, bookErr
	}

	return s, nil
}
