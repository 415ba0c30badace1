package testdoubles

import (
	"context"
	"sync"

	"github.com/readhall/circulation-go/shell"
)

// SpySpan is a recorded tracing span.
type SpySpan struct {
	mu         sync.Mutex
	Name       string
	StartAttrs map[string]string
	Status     string
	EndAttrs   map[string]string
	Finished   bool
}

// SetStatus implements the SpanContext interface.
func (s *SpySpan) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Status = status
}

// AddAttribute implements the SpanContext interface.
func (s *SpySpan) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.EndAttrs == nil {
		s.EndAttrs = map[string]string{}
	}

	s.EndAttrs[key] = value
}

// TracingCollectorSpy captures span lifecycles for verification in tests.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpySpan
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy instance.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan implements the TracingCollector interface.
func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, shell.SpanContext) {

	s.mu.Lock()
	defer s.mu.Unlock()

	span := &SpySpan{Name: name, StartAttrs: attrs}
	s.spans = append(s.spans, span)

	return ctx, span
}

// FinishSpan implements the TracingCollector interface.
func (s *TracingCollectorSpy) FinishSpan(spanCtx shell.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpan)
	if !ok {
		return
	}

	span.mu.Lock()
	defer span.mu.Unlock()

	span.Status = status
	span.EndAttrs = attrs
	span.Finished = true
}

// Spans returns all captured spans.
func (s *TracingCollectorSpy) Spans() []*SpySpan {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*SpySpan(nil), s.spans...)
}
