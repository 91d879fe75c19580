package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveProvider(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test"))
	failsBefore := testutil.ToFloat64(ProviderFailuresTotal.WithLabelValues("test"))

	ObserveProvider("test", time.Now(), nil)
	ObserveProvider("test", time.Now(), errors.New("boom"))

	if got := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test")) - before; got != 2 {
		t.Errorf("requests delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(ProviderFailuresTotal.WithLabelValues("test")) - failsBefore; got != 1 {
		t.Errorf("failures delta = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	ObserveProvider("handler", time.Now(), nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "weathernow_provider_requests_total") {
		t.Error("metrics output missing weathernow_provider_requests_total")
	}
}
