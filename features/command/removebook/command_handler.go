package removebook

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
	GetBookByID(ctx context.Context, bookID uuid.UUID) (core.Book, error)
	HasActiveRentalForBook(ctx context.Context, bookID uuid.UUID) (bool, error)
	DeleteBook(ctx context.Context, bookID uuid.UUID, expectedVersion uint) error
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
// The principal is checked for the admin capability before any work happens.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
func (h CommandHandler) Handle(
	ctx context.Context,
	principal shell.Principal,
	command Command,
) (shell.HandlerResult, error) {

	start := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, h.tracingCollector, commandType)
	shell.LogCommandStart(ctx, h.logger, h.contextualLogger, commandType)

	if err := shell.RequireAdmin(principal); err != nil {
		h.recordError(ctx, span, time.Since(start), err)
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

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

	return h.store.DeleteBook(ctx, s.Book.ID, s.Book.Version)
}

func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	var s State

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

	hasRentals, rentalErr := h.store.HasActiveRentalForBook(ctx, command.BookID)
	if rentalErr != nil {
		return State{}, rentalErr
	}
	s.HasActiveRentals = hasRentals

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
