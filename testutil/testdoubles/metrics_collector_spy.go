package testdoubles

import (
	"sync"
	"time"
)

// SpyMetricRecord is one captured metrics call.
type SpyMetricRecord struct {
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// MetricsCollectorSpy captures metrics calls for verification in tests.
type MetricsCollectorSpy struct {
	mu        sync.Mutex
	durations []SpyMetricRecord
	counters  []SpyMetricRecord
	values    []SpyMetricRecord
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy instance.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

// RecordDuration implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, SpyMetricRecord{Metric: metric, Duration: duration, Labels: labels})
}

// IncrementCounter implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, SpyMetricRecord{Metric: metric, Labels: labels})
}

// RecordValue implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, SpyMetricRecord{Metric: metric, Value: value, Labels: labels})
}

// CounterIncrements returns how often the given counter was incremented with
// a matching label value, counting all increments when labelValue is empty.
func (s *MetricsCollectorSpy) CounterIncrements(metric string, labelKey string, labelValue string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range s.counters {
		if record.Metric != metric {
			continue
		}

		if labelKey != "" && record.Labels[labelKey] != labelValue {
			continue
		}

		count++
	}

	return count
}

// DurationRecords returns the captured duration records for the given metric.
func (s *MetricsCollectorSpy) DurationRecords(metric string) []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []SpyMetricRecord
	for _, record := range s.durations {
		if record.Metric == metric {
			result = append(result, record)
		}
	}

	return result
}
