package authenticateuser

import (
	"context"
	"errors"
	"time"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/shell"
	"github.com/readhall/circulation-go/storage"
)

// Store defines the interface needed by the QueryHandler for storage operations.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
}

// QueryHandler orchestrates the complete query processing workflow.
type QueryHandler struct {
	store            Store
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// Option defines a functional option for configuring QueryHandler.
type Option func(*QueryHandler)

// WithMetrics sets the metrics collector for the QueryHandler.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(h *QueryHandler) {
		h.metricsCollector = collector
	}
}

// WithTracing sets the tracing collector for the QueryHandler.
func WithTracing(collector shell.TracingCollector) Option {
	return func(h *QueryHandler) {
		h.tracingCollector = collector
	}
}

// WithContextualLogging sets the contextual logger for the QueryHandler.
func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(h *QueryHandler) {
		h.contextualLogger = logger
	}
}

// WithLogging sets the basic logger for the QueryHandler.
func WithLogging(logger shell.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency and options.
func NewQueryHandler(store Store, opts ...Option) QueryHandler {
	h := QueryHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle executes the complete query processing workflow: Load -> Verify.
// On success the returned user carries everything the caller needs to issue
// a session.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.User, error) {
	start := time.Now()
	ctx, span := shell.StartQuerySpan(ctx, h.tracingCollector, queryType)
	shell.LogQueryStart(ctx, h.logger, h.contextualLogger, queryType)

	var userFound bool
	var user core.User

	stored, loadErr := h.store.GetUserByEmail(ctx, query.Email)
	switch {
	case loadErr == nil:
		userFound = true
		user = stored
	case errors.Is(loadErr, storage.ErrNotFound):
		// Verify rejects the unknown email
	default:
		h.recordQueryError(ctx, loadErr, time.Since(start), span)
		return core.User{}, loadErr
	}

	authenticated, err := Verify(userFound, user, query)
	if err != nil {
		h.recordQueryError(ctx, err, time.Since(start), span)
		return core.User{}, err
	}

	h.recordQuerySuccess(ctx, time.Since(start), span)

	return authenticated, nil
}

func (h QueryHandler) recordQuerySuccess(ctx context.Context, duration time.Duration, span shell.SpanContext) {
	shell.RecordQueryMetrics(ctx, h.metricsCollector, queryType, shell.StatusSuccess, duration)
	shell.FinishQuerySpan(h.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogQuerySuccess(ctx, h.logger, h.contextualLogger, queryType, shell.StatusSuccess, duration)
}

func (h QueryHandler) recordQueryError(ctx context.Context, err error, duration time.Duration, span shell.SpanContext) {
	status := shell.StatusError

	switch {
	case shell.IsCancellationError(err):
		status = shell.StatusCanceled
	case shell.IsTimeoutError(err):
		status = shell.StatusTimeout
	}

	shell.RecordQueryMetrics(ctx, h.metricsCollector, queryType, status, duration)
	shell.FinishQuerySpan(h.tracingCollector, span, status, duration, err)
	shell.LogQueryError(ctx, h.logger, h.contextualLogger, queryType, err)
}
