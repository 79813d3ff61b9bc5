package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const usecaseTracerName = "nfl-insights/internal/usecase"

var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// The tracer is resolved per call so a provider installed after package init
// still receives the spans.
func usecaseTracer() trace.Tracer {
	return otel.Tracer(usecaseTracerName)
}

// StartJobSpan opens the root span of one sync or rank job. trigger names
// what started it, e.g. "cli" or "cron".
func StartJobSpan(ctx context.Context, job, trigger string) (context.Context, trace.Span) {
	return usecaseTracer().Start(ctx, "job."+job,
		trace.WithNewRoot(),
		trace.WithAttributes(
			attribute.String("job.name", job),
			attribute.String("job.trigger", trigger),
		),
	)
}

// startUsecaseSpan opens a child of the caller's span, or a root span when
// the caller is untraced.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer().Start(ctx, name)
}

func failSpan(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
