package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCountsBonusesByStatus(t *testing.T) {
	c := New()
	c.ObserveBonus("calculated", false, 2*time.Millisecond)
	c.ObserveBonus("calculated", true, time.Millisecond)
	c.ObserveBonus("pending_evaluation", false, time.Millisecond)

	if got := testutil.ToFloat64(c.bonuses.WithLabelValues("calculated")); got != 2 {
		t.Fatalf("expected 2 calculated, got %v", got)
	}
	if got := testutil.ToFloat64(c.defaulted); got != 1 {
		t.Fatalf("expected 1 defaulted, got %v", got)
	}
}

func TestHandlerExposesRequests(t *testing.T) {
	c := New()
	c.Record(http.StatusOK, 10*time.Millisecond)
	c.Record(http.StatusTooManyRequests, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `hrcomp_http_requests_total{code="429"} 1`) {
		t.Fatalf("expected 429 counter in output, got:\n%s", body)
	}
}
