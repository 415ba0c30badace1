package reserveseat

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
	GetSeatByID(ctx context.Context, seatID uuid.UUID) (core.Seat, error)
	HasActiveReservation(ctx context.Context, userID uuid.UUID) (bool, error)
	CreateReservation(ctx context.Context, reservation core.SeatReservation, expectedSeatVersion uint, expectedUserVersion uint) error
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

	reservation := core.SeatReservation{
		ID:              command.ReservationID,
		UserID:          command.UserID,
		SeatID:          command.SeatID,
		ReservationDate: command.OccurredAt,
		StartTime:       command.StartTime,
		EndTime:         command.EndTime,
		Status:          core.ReservationActive,
		CreatedAt:       command.OccurredAt,
		Version:         1,
	}

	return h.store.CreateReservation(ctx, reservation, s.Seat.Version, s.User.Version)
}

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

	seat, seatErr := h.store.GetSeatByID(ctx, command.SeatID)
	switch {
	case seatErr == nil:
		s.SeatFound = true
		s.Seat = seat
	case errors.Is(seatErr, storage.ErrNotFound):
		return s, nil
	default:
		return State{}, seatErr
	}

	hasReservation, resErr := h.store.HasActiveReservation(ctx, command.UserID)
	if resErr != nil {
		return State{}, resErr
	}
	s.HasActiveReservation = hasReservation

	return s, nil
}
