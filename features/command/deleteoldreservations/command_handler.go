// Package deleteoldreservations implements the Delete Old Reservations use case.
//
// Completed and Cancelled reservations are erased; the Active one, if any,
// survives. Deleting nothing is a success with a count of zero, not an
// error: the desired end state is already there.
package deleteoldreservations

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
	DeleteFinishedReservations(ctx context.Context, userID uuid.UUID) (int64, error)
}

// CommandHandler erases a user's finished reservations. The delete is a
// plain filtered statement with nothing to guard, so there is no retry loop.
type CommandHandler struct {
	store            Store
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

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

// Handle erases the user's finished reservations and reports how many rows went.
func (h CommandHandler) Handle(ctx context.Context, command Command) (int64, error) {
	start := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, h.tracingCollector, commandType)
	shell.LogCommandStart(ctx, h.logger, h.contextualLogger, commandType)

	deleted, err := h.executeCommand(ctx, command)
	duration := time.Since(start)

	if err != nil {
		shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusError, duration)
		shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusError, duration, err)
		shell.LogCommandError(ctx, h.logger, h.contextualLogger, commandType, err)

		return 0, err
	}

	shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusSuccess, duration)
	shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogCommandSuccess(ctx, h.logger, h.contextualLogger, commandType, shell.StatusSuccess, duration)

	return deleted, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (int64, error) {
	if _, err := h.store.GetUserByID(ctx, command.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, core.ErrUserNotFound
		}

		return 0, err
	}

	return h.store.DeleteFinishedReservations(ctx, command.UserID)
}
