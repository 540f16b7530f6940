package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

// FilteredTracer forwards query traces to inner unless the SQL mentions skipTable.
type FilteredTracer struct {
	inner     pgx.QueryTracer
	skipTable string
}

// NewFilteredTracer wraps inner, dropping traces for statements touching skipTable.
func NewFilteredTracer(inner pgx.QueryTracer, skipTable string) *FilteredTracer {
	return &FilteredTracer{inner: inner, skipTable: strings.ToLower(skipTable)}
}

// skipCtxKey marks a traced query as skipped so TraceQueryEnd stays silent too
type skipCtxKey struct{}

func (t *FilteredTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if t.skipTable != "" && strings.Contains(strings.ToLower(data.SQL), t.skipTable) {
		return context.WithValue(ctx, skipCtxKey{}, true)
	}

	return t.inner.TraceQueryStart(ctx, conn, data)
}

func (t *FilteredTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	if ctx.Value(skipCtxKey{}) != nil {
		return
	}

	t.inner.TraceQueryEnd(ctx, conn, data)
}
