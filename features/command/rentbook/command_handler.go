package rentbook

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
	GetUserByID(ctx context.Context, userID uuid.UUID) (core.User, error)
	GetBookByID(ctx context.Context, bookID uuid.UUID) (core.Book, error)
	CountActiveRentalsByUser(ctx context.Context, userID uuid.UUID) (int, error)
	HasActiveRental(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (bool, error)
	CreateRental(ctx context.Context, rental core.BookRental, expectedBookVersion uint, expectedUserVersion uint) error
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Load -> Decide -> Apply.
// Observability is optional and configured through options.
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
// It delegates business logic to executeCommand and handles retry with exponential backoff.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	start := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, h.tracingCollector, commandType)
	shell.LogCommandStart(ctx, h.logger, h.contextualLogger, commandType)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	duration := time.Since(start)

	if err != nil {
		h.recordError(ctx, span, duration, err)
		return shell.NewErrorResult(retryMetrics), err
	}

	h.recordSuccess(ctx, span, duration)

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

	rental := core.BookRental{
		ID:         command.RentalID,
		UserID:     command.UserID,
		BookID:     command.BookID,
		RentalDate: command.OccurredAt,
		DueDate:    command.OccurredAt.Add(core.LoanPeriod),
		Status:     core.RentalActive,
		Version:    1,
	}

	return h.store.CreateRental(ctx, rental, s.Book.Version, s.User.Version)
}

// loadState reads everything the decision depends on. Versions captured here
// guard the write, so a stale read surfaces as a concurrency conflict.
func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	var s State

	user, userErr := h.store.GetUserByID(ctx, command.UserID)
	switch {
	case userErr == nil:
		s.UserFound = true
		s.User = user
	case errors.Is(userErr, storage.ErrNotFound):
		return s, nil // Decide rejects the missing user
	default:
		return State{}, userErr
	}

	book, bookErr := h.store.GetBookByID(ctx, command.BookID)
	switch {
	case bookErr == nil:
		s.BookFound = true
		s.Book = book
	case errors.Is(bookErr, storage.ErrNotFound):
		return s, nil // Decide rejects the missing book
	default:
		return State{}, bookErr
	}

	count, countErr := h.store.CountActiveRentalsByUser(ctx, command.UserID)
	if countErr != nil {
		return State{}, countErr
	}
	s.ActiveRentalCount = count

	alreadyRented, dupErr := h.store.HasActiveRental(ctx, command.UserID, command.BookID)
	if dupErr != nil {
		return State{}, dupErr
	}
	s.AlreadyRentedByUser = alreadyRented

	return s, nil
}

func (h CommandHandler) recordSuccess(ctx context.Context, span shell.SpanContext, duration time.Duration) {
	shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusSuccess, duration)
	shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogCommandSuccess(ctx, h.logger, h.contextualLogger, commandType, shell.StatusSuccess, duration)
}

func (h CommandHandler) recordError(ctx context.Context, span shell.SpanContext, duration time.Duration, err error) {
	shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusError, duration)
	shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusError, duration, err)
	shell.LogCommandError(ctx, h.logger, h.contextualLogger, commandType, err)
}
