package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrMatchID    = attribute.Key("scoreboard.match_id")
	attrHomeTeam   = attribute.Key("scoreboard.home_team")
	attrAwayTeam   = attribute.Key("scoreboard.away_team")
	attrBatchItems = attribute.Key("scoreboard.batch_items")
)

var usecaseTracer = otel.Tracer("live-scoreboard/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only opens a child span; calls without a traced parent
// (tests, background work) get a noop span and an untouched ctx.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
