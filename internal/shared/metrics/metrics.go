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

type counter struct {
	name string
	help string
	v    atomic.Uint64
}

var (
	analysisStarted     = &counter{name: "analysis_started_total", help: "Total analyses started"}
	analysisCompleted   = &counter{name: "analysis_completed_total", help: "Total analyses completed"}
	analysisFailed      = &counter{name: "analysis_failed_total", help: "Total analyses failed"}
	analysisDegraded    = &counter{name: "analysis_degraded_total", help: "Analyses that fell back to heuristic or default extraction"}
	generationCompleted = &counter{name: "generation_completed_total", help: "Total documents generated"}
	generationFailed    = &counter{name: "generation_failed_total", help: "Total document generations failed"}
	chatReplies         = &counter{name: "chat_replies_total", help: "Total chat replies produced"}
	chatFailed          = &counter{name: "chat_failed_total", help: "Total chat messages that got no reply"}

	// Render order.
	counters = []*counter{
		analysisStarted, analysisCompleted, analysisFailed, analysisDegraded,
		generationCompleted, generationFailed,
		chatReplies, chatFailed,
	}

	modelBuckets       = []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000}
	analysisDuration   = newHistogram(modelBuckets)
	generationDuration = newHistogram(modelBuckets)
)

func IncAnalysisStarted()   { analysisStarted.v.Add(1) }
func IncAnalysisCompleted() { analysisCompleted.v.Add(1) }
func IncAnalysisFailed()    { analysisFailed.v.Add(1) }

// IncAnalysisDegraded counts analyses whose model output needed a fallback
// extraction stage.
func IncAnalysisDegraded() { analysisDegraded.v.Add(1) }

func IncGenerationCompleted() { generationCompleted.v.Add(1) }
func IncGenerationFailed()    { generationFailed.v.Add(1) }

func IncChatReplies() { chatReplies.v.Add(1) }
func IncChatFailed()  { chatFailed.v.Add(1) }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	analysisDuration.Observe(max(value, 0))
}

// ObserveGenerationDurationMs records a drafting duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	generationDuration.Observe(max(value, 0))
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
	for _, c := range counters {
		writeCounter(&buf, c.name, c.help, c.v.Load())
	}
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
	writeHistogram(&buf, "generation_duration_ms", "Document generation duration in milliseconds", generationDuration.Snapshot())
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
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	// Observe already increments every bucket the value fits in.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
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

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
