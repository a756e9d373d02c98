package telemetry

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/coil/internal/core/ports"
)

var _ ports.Tracer = (*Switch)(nil)

// Switch is a ports.Tracer that consults the trace setting on every Start.
// When tracing is on, spans go through an SDK provider whose only processor
// is a LogProcessor. Otherwise they are no-ops.
type Switch struct {
	settings ports.Settings
	logger   ports.Logger

	once     sync.Once
	provider *sdktrace.TracerProvider
	otel     *OTelTracer
	noop     *NoOpTracer
}

// NewSwitch creates a Switch.
func NewSwitch(settings ports.Settings, logger ports.Logger) *Switch {
	return &Switch{
		settings: settings,
		logger:   logger,
		noop:     NewNoOpTracer(),
	}
}

// Start creates a span on the tracer selected by the trace setting.
func (s *Switch) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	if !s.settings.Trace() {
		return s.noop.Start(ctx, name)
	}
	s.once.Do(func() {
		s.provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(NewLogProcessor(s.logger)),
		)
		s.otel = NewOTelTracer(s.provider)
	})
	return s.otel.Start(ctx, name)
}

// Shutdown flushes and stops the SDK provider if one was started.
func (s *Switch) Shutdown(ctx context.Context) error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Shutdown(ctx)
}
