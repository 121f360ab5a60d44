package mocks

import (
	"context"
	"hotel/infras/otel"

	oteltrace "go.opentelemetry.io/otel/trace"
)

type otelImpl struct{}

// NewScope hands out scopes over a non-recording span, keeping the context unchanged.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, otel.NewScope(oteltrace.SpanFromContext(ctx))
}

func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

// NewOtel returns an Otel that records nothing, for tests.
func NewOtel() otel.Otel {
	return &otelImpl{}
}
