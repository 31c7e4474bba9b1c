// Package memory is an in-process MetricsWriter used as the default export
// target and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"profilo/internal/core"
	ports "profilo/internal/sheets"
)

// Row is one recorded summary.
type Row struct {
	Login     string
	Metrics   core.Metrics
	FetchedAt time.Time
}

type Writer struct {
	mu   sync.Mutex
	rows []Row
}

var _ ports.MetricsWriter = (*Writer)(nil)

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) AppendSummary(_ context.Context, login string, m core.Metrics, fetchedAt time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, Row{Login: login, Metrics: m, FetchedAt: fetchedAt})
	return nil
}

// Rows returns a copy of everything appended so far.
func (w *Writer) Rows() []Row {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Row, len(w.rows))
	copy(out, w.rows)
	return out
}
