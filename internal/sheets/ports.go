package sheets

import (
	"context"
	"time"

	"profilo/internal/core"
)

// MetricsWriter is the outbound port for the metrics export target: one
// appended row per processed snapshot.
type MetricsWriter interface {
	AppendSummary(ctx context.Context, login string, m core.Metrics, fetchedAt time.Time) error
}
