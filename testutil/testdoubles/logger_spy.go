package testdoubles

import (
	"sync"
)

// SpyLogRecord is one captured log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// LoggerSpy captures leveled log calls for verification in tests.
type LoggerSpy struct {
	mu      sync.Mutex
	records []SpyLogRecord
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{Level: level, Message: msg, Args: args})
}

// Debug implements the Logger interface.
func (s *LoggerSpy) Debug(msg string, args ...any) { s.record("debug", msg, args) }

// Info implements the Logger interface.
func (s *LoggerSpy) Info(msg string, args ...any) { s.record("info", msg, args) }

// Warn implements the Logger interface.
func (s *LoggerSpy) Warn(msg string, args ...any) { s.record("warn", msg, args) }

// Error implements the Logger interface.
func (s *LoggerSpy) Error(msg string, args ...any) { s.record("error", msg, args) }

// MessagesAt returns every captured message logged at the given level.
func (s *LoggerSpy) MessagesAt(level string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []string
	for _, record := range s.records {
		if record.Level == level {
			result = append(result, record.Message)
		}
	}

	return result
}
