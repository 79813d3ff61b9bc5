package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRouteOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/v1/rankings", want: routeRankings},
		{path: "/v1/rankings/12", want: routeTeamRanking},
		{path: "/v1/rankings/12/history", want: routeUnmatched},
		{path: "/v1/rankings/", want: routeUnmatched},
		{path: "/healthz", want: routeHealthz},
		{path: " /metrics ", want: routeMetrics},
		{path: "/metricsz", want: routeUnmatched},
		{path: "/", want: routeUnmatched},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, routeOf(tt.path), tt.path)
	}
}

// installSpanRecorder swaps the global tracer provider, so callers must not
// run in parallel. The router must be built after the swap.
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

func TestRouter_TracesRankingReadsOnly(t *testing.T) {
	spans := installSpanRecorder(t)
	router := newTestRouter(fakeRankings{items: []ranking.Snapshot{
		{TeamID: 7, Ranks: map[string]int{"man_rate_rank": 3}},
	}}, nil)

	for _, path := range []string{"/healthz", "/metrics", "/nope", "/v1/rankings/7"} {
		serve(t, router, http.MethodGet, path)
	}

	ended := spans.Ended()
	require.Len(t, ended, 2)
	byName := make(map[string]sdktrace.ReadOnlySpan, len(ended))
	for _, span := range ended {
		byName[span.Name()] = span
	}

	server, ok := byName["GET "+routeTeamRanking]
	require.True(t, ok, "server span missing")
	assert.Contains(t, server.Attributes(), attribute.String("http.route", routeTeamRanking))

	handler, ok := byName["httpapi.Handler.GetTeamRanking"]
	require.True(t, ok, "handler span missing")
	assert.Equal(t, server.SpanContext().SpanID(), handler.Parent().SpanID())
	assert.Contains(t, handler.Attributes(), attribute.Int64("team.id", 7))
	assert.Contains(t, handler.Attributes(), attribute.Bool("ranking.found", true))
}

func TestRouter_StoreErrorMarksHandlerSpan(t *testing.T) {
	spans := installSpanRecorder(t)
	router := newTestRouter(fakeRankings{err: errors.New("pq: connection refused")}, nil)

	rec, _ := serve(t, router, http.MethodGet, "/v1/rankings")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var handler sdktrace.ReadOnlySpan
	for _, span := range spans.Ended() {
		if span.Name() == "httpapi.Handler.ListRankings" {
			handler = span
		}
	}
	require.NotNil(t, handler)
	assert.Equal(t, codes.Error, handler.Status().Code)
	assert.Equal(t, "internalError", handler.Status().Description)
}
