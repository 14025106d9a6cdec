package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 2 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}
}

func TestHandlerRendersCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncAnalysisDegraded()
	IncGenerationCompleted()

	router := gin.New()
	router.GET("/metrics", Handler())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		"# TYPE analysis_degraded_total counter",
		"# TYPE generation_completed_total counter",
		`analysis_duration_ms_bucket{le="+Inf"}`,
		"# TYPE generation_duration_ms histogram",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in output:\n%s", want, body)
		}
	}
}

func TestCountersRenderInOrder(t *testing.T) {
	before := generationFailed.v.Load()
	IncGenerationFailed()

	out := Render()
	if !strings.Contains(out, "generation_failed_total "+strconv.FormatUint(before+1, 10)+"\n") {
		t.Fatalf("expected incremented counter in output:\n%s", out)
	}
	if strings.Index(out, "analysis_started_total") > strings.Index(out, "generation_failed_total") {
		t.Fatal("expected analysis counters before generation counters")
	}
}

func TestObserveClampsNegativeDurations(t *testing.T) {
	h := generationDuration.Snapshot()
	ObserveGenerationDurationMs(-5)
	after := generationDuration.Snapshot()
	if after.count != h.count+1 || after.sum != h.sum {
		t.Fatalf("expected clamped observation, before=%+v after=%+v", h, after)
	}
}
