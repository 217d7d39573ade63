// Package telemetry carries the SDK's structured logging and metrics
// boundaries. The host application owns the actual sinks: any slog.Handler
// can back the logger, and MetricsCollector is a capability interface with a
// no-op default.
package telemetry

import (
	"io"
	"log/slog"
	"time"
)

// NewLogger returns a logger tagged with the SDK component prefix. A nil
// handler falls back to a discard handler so library code can log
// unconditionally.
func NewLogger(handler slog.Handler, prefix string) *slog.Logger {
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	return slog.New(handler).With(slog.String("component", prefix))
}

// MetricsCollector receives measurement events from the SDK. Vault type tags
// are for metrics only; business logic never branches on them.
type MetricsCollector interface {
	RecordVaultResponse(vaultType, action, path string, statusCode int, duration time.Duration)
	RecordOperationResult(operation, outcome string)
}

// NoopMetricsCollector is the default MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordVaultResponse(string, string, string, int, time.Duration) {}
func (NoopMetricsCollector) RecordOperationResult(string, string)                           {}

// ResponseMonitor measures one vault round trip and reports it to a
// collector when logged.
type ResponseMonitor struct {
	collector  MetricsCollector
	vaultType  string
	action     string
	path       string
	statusCode int
	started    time.Time
	ended      time.Time
}

// NewMeasurement starts a measurement for one vault proxy call.
func NewMeasurement(collector MetricsCollector, vaultType, action string) *ResponseMonitor {
	if collector == nil {
		collector = NoopMetricsCollector{}
	}
	return &ResponseMonitor{collector: collector, vaultType: vaultType, action: action}
}

func (m *ResponseMonitor) SetPath(path string) *ResponseMonitor {
	m.path = path
	return m
}

func (m *ResponseMonitor) SetHTTPStatusCode(code int) *ResponseMonitor {
	m.statusCode = code
	return m
}

func (m *ResponseMonitor) Start() *ResponseMonitor {
	m.started = time.Now()
	return m
}

func (m *ResponseMonitor) End() *ResponseMonitor {
	m.ended = time.Now()
	return m
}

// LogResult reports the measurement. Calling it before End uses the current
// time.
func (m *ResponseMonitor) LogResult() {
	end := m.ended
	if end.IsZero() {
		end = time.Now()
	}
	m.collector.RecordVaultResponse(m.vaultType, m.action, m.path, m.statusCode, end.Sub(m.started))
}
