package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// installSpanRecorder swaps the global tracer provider, so callers must not
// run in parallel.
func installSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func endedSpansByName(rec *tracetest.SpanRecorder) map[string]sdktrace.ReadOnlySpan {
	out := make(map[string]sdktrace.ReadOnlySpan)
	for _, span := range rec.Ended() {
		out[span.Name()] = span
	}
	return out
}

func TestPipelineRun_RecordsSpansWithoutParent(t *testing.T) {
	rec := installSpanRecorder(t)
	f := newPipelineFixture(t, FanOutAbortAll)

	_, err := f.pipeline.Run(context.Background())
	require.NoError(t, err)

	spans := endedSpansByName(rec)
	run, ok := spans["usecase.Pipeline.Run"]
	require.True(t, ok, "run span missing")
	assert.False(t, run.Parent().IsValid())

	for _, name := range []string{"usecase.Pipeline.Extract", "usecase.Pipeline.Transform"} {
		span, ok := spans[name]
		require.True(t, ok, "%s span missing", name)
		assert.Equal(t, run.SpanContext().TraceID(), span.SpanContext().TraceID(), name)
		assert.Equal(t, run.SpanContext().SpanID(), span.Parent().SpanID(), name)
	}

	index, ok := spans["usecase.BuildIndex"]
	require.True(t, ok, "index span missing")
	assert.Equal(t, spans["usecase.Pipeline.Transform"].SpanContext().SpanID(), index.Parent().SpanID())
}

func TestStartJobSpan_ParentsPipelineRun(t *testing.T) {
	rec := installSpanRecorder(t)
	f := newPipelineFixture(t, FanOutAbortAll)

	ctx, job := StartJobSpan(context.Background(), JobSync, "cron")
	_, err := f.pipeline.Run(ctx)
	job.End()
	require.NoError(t, err)

	spans := endedSpansByName(rec)
	root, ok := spans["job.sync"]
	require.True(t, ok, "job span missing")
	assert.False(t, root.Parent().IsValid())
	assert.Contains(t, root.Attributes(), attribute.String("job.trigger", "cron"))

	run, ok := spans["usecase.Pipeline.Run"]
	require.True(t, ok, "run span missing")
	assert.Equal(t, root.SpanContext().SpanID(), run.Parent().SpanID())
}

func TestPipelineRun_FailureMarksSpan(t *testing.T) {
	rec := installSpanRecorder(t)
	f := newPipelineFixture(t, FanOutAbortAll)
	f.fetcher.fail(teamsURL, errors.New("connection reset"))

	_, err := f.pipeline.Run(context.Background())
	require.Error(t, err)

	run, ok := endedSpansByName(rec)["usecase.Pipeline.Run"]
	require.True(t, ok, "run span missing")
	assert.Equal(t, codes.Error, run.Status().Code)
}
