package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer creates spans around loads and compiles.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is one traced load or compile.
type Span interface {
	End()
	// RecordError marks the span as failed.
	RecordError(err error)
	// SetAttribute records a coil.* attribute such as the cache outcome.
	SetAttribute(key string, value any)
}
