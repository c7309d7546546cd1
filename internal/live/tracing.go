// Tracing instrumentation for the ingest pipeline.
package live

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// spanHandle wraps a span so callers can hold a zero value safely before a
// run starts.
type spanHandle struct {
	span trace.Span
}

// startRunSpan starts the span covering one debate run.
func startRunSpan(ctx context.Context, agents, rounds int) (context.Context, spanHandle) {
	tracer := otel.Tracer("agora/live")
	ctx, span := tracer.Start(ctx, "debate.run")
	span.SetAttributes(
		attribute.Int("debate.agents", agents),
		attribute.Int("debate.rounds", rounds),
	)
	return ctx, spanHandle{span: span}
}

// addRoundEvent marks a round transition on the run span.
func addRoundEvent(h spanHandle, round int) {
	if h.span == nil {
		return
	}
	h.span.AddEvent("debate.round", trace.WithAttributes(attribute.Int("round", round)))
}

// end finishes the run span, recording the error if the run failed.
func (h spanHandle) end(err error) {
	if h.span == nil {
		return
	}
	if err != nil {
		h.span.RecordError(err)
	}
	h.span.End()
}
