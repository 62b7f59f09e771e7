package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/clients/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/clients/{id}", "404"))

	for _, id := range []string{"a", "b"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/clients/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	}

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/clients/{id}", "404"))
	assert.Equal(t, before+2, after)
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200"))
	assert.Equal(t, before+1, after)
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(MembershipsExpiredTotal)
	MembershipsExpiredTotal.Add(3)
	assert.Equal(t, before+3, testutil.ToFloat64(MembershipsExpiredTotal))

	before = testutil.ToFloat64(RemindersTotal.WithLabelValues("published"))
	RemindersTotal.WithLabelValues("published").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RemindersTotal.WithLabelValues("published")))
}
