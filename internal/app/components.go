package app

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/coil/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	tracer ports.Tracer
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, tracer ports.Tracer) *Components {
	return &Components{
		App:    app,
		Logger: logger,
		tracer: tracer,
	}
}

// Shutdown closes the cache store and flushes the tracer if they hold
// resources.
func (c *Components) Shutdown(ctx context.Context) error {
	var errs []error
	if c.App != nil {
		if closer, ok := c.App.store.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}
	if s, ok := c.tracer.(interface{ Shutdown(context.Context) error }); ok {
		errs = append(errs, s.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
