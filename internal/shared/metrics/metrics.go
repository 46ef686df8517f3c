package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	documentsCompletedTotal  atomic.Uint64
	documentsFailedTotal     atomic.Uint64
	documentsUnresolvedTotal atomic.Uint64
	summariesSavedTotal      atomic.Uint64
	runsTotal                atomic.Uint64

	documentDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncDocumentCompleted increments the completed-document counter.
func IncDocumentCompleted() {
	documentsCompletedTotal.Add(1)
}

// IncDocumentFailed increments the failed-document counter.
func IncDocumentFailed() {
	documentsFailedTotal.Add(1)
}

// IncDocumentUnresolved increments the unresolved-document counter.
func IncDocumentUnresolved() {
	documentsUnresolvedTotal.Add(1)
}

// IncSummarySaved increments the saved-summary counter.
func IncSummarySaved() {
	summariesSavedTotal.Add(1)
}

// IncRuns increments the run counter.
func IncRuns() {
	runsTotal.Add(1)
}

// ObserveDocumentDurationMs records a per-document processing duration in milliseconds.
func ObserveDocumentDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	documentDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "documents_completed_total", "Total documents summarized successfully", documentsCompletedTotal.Load())
	writeCounter(&buf, "documents_failed_total", "Total documents recorded as failed", documentsFailedTotal.Load())
	writeCounter(&buf, "documents_unresolved_total", "Total documents whose summary could not be persisted", documentsUnresolvedTotal.Load())
	writeCounter(&buf, "summaries_saved_total", "Total summary records persisted", summariesSavedTotal.Load())
	writeCounter(&buf, "runs_total", "Total batch runs started", runsTotal.Load())
	writeHistogram(&buf, "document_duration_ms", "Per-document processing duration in milliseconds", documentDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
