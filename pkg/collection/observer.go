package collection

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/getmockd/userdesk/pkg/record"
)

// Observer defines hooks for metrics and tracing of store operations.
type Observer interface {
	// OnRefresh is called after the sequence was replaced by a list.
	OnRefresh(count int, duration time.Duration)

	// OnAdd is called after a created record was appended.
	OnAdd(id record.ID, duration time.Duration)

	// OnReplace is called after an updated record was applied.
	OnReplace(id record.ID, duration time.Duration)

	// OnRemove is called after a delete; removed is the number of local
	// records that carried the id.
	OnRemove(id record.ID, removed int, duration time.Duration)

	// OnOrphan is called when an update succeeded for an id with no local
	// record. The returned record is appended.
	OnOrphan(id record.ID)

	// OnError is called when an operation fails.
	OnError(operation string, err error)
}

// NoopObserver ignores every event.
type NoopObserver struct{}

func (NoopObserver) OnRefresh(count int, duration time.Duration)                {}
func (NoopObserver) OnAdd(id record.ID, duration time.Duration)                 {}
func (NoopObserver) OnReplace(id record.ID, duration time.Duration)             {}
func (NoopObserver) OnRemove(id record.ID, removed int, duration time.Duration) {}
func (NoopObserver) OnOrphan(id record.ID)                                      {}
func (NoopObserver) OnError(operation string, err error)                        {}

// MetricsObserver counts store operations. Safe for concurrent use.
type MetricsObserver struct {
	refreshCount   atomic.Int64
	addCount       atomic.Int64
	replaceCount   atomic.Int64
	removeCount    atomic.Int64
	orphanCount    atomic.Int64
	errorCount     atomic.Int64
	totalLatencyNs atomic.Int64
}

// NewMetricsObserver creates a metrics observer with zeroed counters.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (m *MetricsObserver) OnRefresh(count int, duration time.Duration) {
	m.refreshCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnAdd(id record.ID, duration time.Duration) {
	m.addCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnReplace(id record.ID, duration time.Duration) {
	m.replaceCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnRemove(id record.ID, removed int, duration time.Duration) {
	m.removeCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnOrphan(id record.ID) {
	m.orphanCount.Add(1)
}

func (m *MetricsObserver) OnError(operation string, err error) {
	m.errorCount.Add(1)
}

// Snapshot returns a copy of the current counters.
func (m *MetricsObserver) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RefreshCount: m.refreshCount.Load(),
		AddCount:     m.addCount.Load(),
		ReplaceCount: m.replaceCount.Load(),
		RemoveCount:  m.removeCount.Load(),
		OrphanCount:  m.orphanCount.Load(),
		ErrorCount:   m.errorCount.Load(),
		TotalLatency: time.Duration(m.totalLatencyNs.Load()),
	}
}

// MetricsSnapshot is a point-in-time copy of MetricsObserver counters.
type MetricsSnapshot struct {
	RefreshCount int64         `json:"refreshCount"`
	AddCount     int64         `json:"addCount"`
	ReplaceCount int64         `json:"replaceCount"`
	RemoveCount  int64         `json:"removeCount"`
	OrphanCount  int64         `json:"orphanCount"`
	ErrorCount   int64         `json:"errorCount"`
	TotalLatency time.Duration `json:"totalLatencyNs"`
}

// TotalOperations returns the number of successful operations.
func (s MetricsSnapshot) TotalOperations() int64 {
	return s.RefreshCount + s.AddCount + s.ReplaceCount + s.RemoveCount
}

// LogObserver writes every event to a logger at debug level.
type LogObserver struct {
	Log *slog.Logger
}

func (o LogObserver) OnRefresh(count int, duration time.Duration) {
	o.Log.Debug("users refreshed", "count", count, "duration", duration)
}

func (o LogObserver) OnAdd(id record.ID, duration time.Duration) {
	o.Log.Debug("user added", "id", id, "duration", duration)
}

func (o LogObserver) OnReplace(id record.ID, duration time.Duration) {
	o.Log.Debug("user replaced", "id", id, "duration", duration)
}

func (o LogObserver) OnRemove(id record.ID, removed int, duration time.Duration) {
	o.Log.Debug("user removed", "id", id, "removed", removed, "duration", duration)
}

func (o LogObserver) OnOrphan(id record.ID) {
	o.Log.Debug("orphan update appended", "id", id)
}

func (o LogObserver) OnError(operation string, err error) {
	o.Log.Debug("operation failed", "operation", operation, "error", err)
}
