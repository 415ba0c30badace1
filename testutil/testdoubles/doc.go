// Package testdoubles provides spy implementations of the shell
// observability interfaces.
//
// The spies capture every metrics, tracing, and logging call so tests can
// verify that handlers emit the expected telemetry without a real backend:
//   - MetricsCollectorSpy captures durations, counters, and values
//   - TracingCollectorSpy captures started and finished spans
//   - LoggerSpy captures leveled log records
package testdoubles
