package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const apiTracerName = "nfl-insights/internal/interfaces/httpapi"

var noopSpan = trace.SpanFromContext(context.Background())

// Route templates of the ops router.
const (
	routeHealthz     = "/healthz"
	routeMetrics     = "/metrics"
	routeRankings    = "/v1/rankings"
	routeTeamRanking = "/v1/rankings/{teamID}"
	routeUnmatched   = "unmatched"
)

// routeOf maps a request path onto the route template serving it, keeping
// team ids out of span names.
func routeOf(path string) string {
	path = strings.TrimSpace(path)
	switch path {
	case routeHealthz, routeMetrics, routeRankings:
		return path
	}
	if id, ok := strings.CutPrefix(path, routeRankings+"/"); ok && id != "" && !strings.Contains(id, "/") {
		return routeTeamRanking
	}
	return routeUnmatched
}

// shouldTraceRequest traces ranking reads only. Health checks and scrapes
// arrive every few seconds and unmatched paths carry nothing to follow.
func shouldTraceRequest(path string) bool {
	switch routeOf(path) {
	case routeRankings, routeTeamRanking:
		return true
	default:
		return false
	}
}

func isPolledRoute(path string) bool {
	route := routeOf(path)
	return route == routeHealthz || route == routeMetrics
}

// startRouteSpan opens a handler span under the request's server span and
// tags the server span with route. Untraced requests get a noop span.
func startRouteSpan(ctx context.Context, route, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	server := trace.SpanFromContext(ctx)
	if !server.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	server.SetAttributes(attribute.String("http.route", route))
	return otel.Tracer(apiTracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}
