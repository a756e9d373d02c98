package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/coil/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogProcessor)(nil)

// LogProcessor implements sdktrace.SpanProcessor by writing one log line per
// finished span.
type LogProcessor struct {
	logger ports.Logger
}

// NewLogProcessor returns a new LogProcessor.
func NewLogProcessor(logger ports.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// OnStart does nothing.
func (p *LogProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration and attributes.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	p.logger.Info(FormatSpan(s.Name(), s.EndTime().Sub(s.StartTime()), attributes(s), s.Status().Code == codes.Error))
}

// ForceFlush does nothing.
func (p *LogProcessor) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *LogProcessor) Shutdown(context.Context) error {
	return nil
}

// FormatSpan renders a finished span as "trace name duration k=v...".
// Attributes are sorted by key.
func FormatSpan(name string, d time.Duration, attrs map[string]string, failed bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "trace %s %s", name, d.Round(time.Microsecond))

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, attrs[k])
	}
	if failed {
		b.WriteString(" status=error")
	}
	return b.String()
}

func attributes(s sdktrace.ReadOnlySpan) map[string]string {
	kvs := s.Attributes()
	attrs := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	return attrs
}
