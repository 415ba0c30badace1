package cancelreservation

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
	GetReservationByID(ctx context.Context, reservationID uuid.UUID) (core.SeatReservation, error)
	GetSeatByID(ctx context.Context, seatID uuid.UUID) (core.Seat, error)
	CancelReservationAndVacateSeat(
		ctx context.Context,
		reservationID uuid.UUID,
		expectedReservationVersion uint,
		seatID uuid.UUID,
		expectedSeatVersion uint,
	) error
	MarkReservationCancelled(ctx context.Context, reservationID uuid.UUID, expectedVersion uint) error
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
// Returns HandlerResult containing business outcomes and execution metadata for observability.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	start := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, h.tracingCollector, commandType)
	shell.LogCommandStart(ctx, h.logger, h.contextualLogger, commandType)

	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	duration := time.Since(start)

	switch {
	case isIdempotent:
		shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusIdempotent, duration)
		shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusIdempotent, duration, nil)
		shell.LogCommandSuccess(ctx, h.logger, h.contextualLogger, commandType, shell.StatusIdempotent, duration)

		return shell.NewIdempotentResult(retryMetrics), err

	case err != nil:
		shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusError, duration)
		shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusError, duration, err)
		shell.LogCommandError(ctx, h.logger, h.contextualLogger, commandType, err)

		return shell.NewErrorResult(retryMetrics), err

	default:
		shell.RecordCommandMetrics(ctx, h.metricsCollector, commandType, shell.StatusSuccess, duration)
		shell.FinishCommandSpan(h.tracingCollector, span, shell.StatusSuccess, duration, nil)
		shell.LogCommandSuccess(ctx, h.logger, h.contextualLogger, commandType, shell.StatusSuccess, duration)

		return shell.NewSuccessResult(retryMetrics), nil
	}
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	s, loadErr := h.loadState(ctx, command)
	if loadErr != nil {
		return false, loadErr
	}

	result := Decide(s, command)

	if result.IsIdempotent() {
		return true, nil
	}

	if err := result.HasError(); err != nil {
		return false, err
	}

	if s.Reservation.Status == core.ReservationActive {
		return false, h.store.CancelReservationAndVacateSeat(
			ctx,
			s.Reservation.ID, s.Reservation.Version,
			s.Seat.ID, s.Seat.Version,
		)
	}

	// Completed reservation: the seat was released when the visit ended.
	return false, h.store.MarkReservationCancelled(ctx, s.Reservation.ID, s.Reservation.Version)
}

func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	var s State

	reservation, resErr := h.store.GetReservationByID(ctx, command.ReservationID)
	switch {
	case resErr == nil:
		s.ReservationFound = true
		s.Reservation = reservation
	case errors.Is(resErr, storage.ErrNotFound):
		return s, nil // Decide rejects the missing reservation
	default:
		return State{}, resErr
	}

	if reservation.Status != core.ReservationActive {
		return s, nil // seat only matters when it has to be vacated
	}

	seat, seatErr := h.store.GetSeatByID(ctx, reservation.SeatID)
	switch {
	case seatErr == nil:
		s.SeatFound = true
		s.Seat = seat
	case errors.Is(seatErr, storage.ErrNotFound):
		return s, nil
	default:
		return State{}, seatErr
	}

	return s, nil
}
