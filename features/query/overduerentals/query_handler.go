package overduerentals

import (
	"context"
	"time"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/shell"
)

// Store defines the interface needed by the QueryHandler for storage operations.
type Store interface {
	ListActiveRentalsDueBefore(ctx context.Context, asOf time.Time) ([]core.BookRental, error)
}

// QueryHandler orchestrates the complete query processing workflow.
// It handles infrastructure concerns like storage access and observability
// instrumentation, and delegates projection logic to the pure core function.
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

// Handle executes the complete query processing workflow: Load -> Project.
// It loads the candidate rentals, delegates projection to the core function,
// and instruments the operation. The report is an administrative view, so
// the caller's role is checked before any store read.
func (h QueryHandler) Handle(ctx context.Context, principal shell.Principal, query Query) (OverdueRentals, error) {
	start := time.Now()
	ctx, span := shell.StartQuerySpan(ctx, h.tracingCollector, queryType)
	shell.LogQueryStart(ctx, h.logger, h.contextualLogger, queryType)

	if authErr := shell.RequireAdmin(principal); authErr != nil {
		h.recordQueryError(ctx, authErr, time.Since(start), span)
		return OverdueRentals{}, authErr
	}

	rentals, err := h.store.ListActiveRentalsDueBefore(ctx, query.AsOf)
	if err != nil {
		h.recordQueryError(ctx, err, time.Since(start), span)
		return OverdueRentals{}, err
	}

	result := Project(rentals, query)

	h.recordQuerySuccess(ctx, time.Since(start), span)

	return result, nil
}

// recordQuerySuccess records successful query execution with observability.
func (h QueryHandler) recordQuerySuccess(ctx context.Context, duration time.Duration, span shell.SpanContext) {
	shell.RecordQueryMetrics(ctx, h.metricsCollector, queryType, shell.StatusSuccess, duration)
	shell.FinishQuerySpan(h.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogQuerySuccess(ctx, h.logger, h.contextualLogger, queryType, shell.StatusSuccess, duration)
}

// recordQueryError records failed query execution with observability.
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
