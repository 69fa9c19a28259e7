package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zatekoja/doseordering/internal/api/middleware"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(t.Context())
	})
	return recorder
}

func spanAttribute(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestObservabilityMiddleware_RecordsMatchedRoute(t *testing.T) {
	recorder := recordSpans(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/vendors/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := middleware.ObservabilityMiddleware(nil)(middleware.LoggingMiddleware(mux))

	for _, id := range []string{"V001", "V002"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/vendors/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, "GET /api/vendors/{id}", span.Name())

		route, ok := spanAttribute(span, "http.route")
		require.True(t, ok)
		assert.Equal(t, "/api/vendors/{id}", route.AsString())

		status, ok := spanAttribute(span, "http.status_code")
		require.True(t, ok)
		assert.Equal(t, int64(http.StatusNoContent), status.AsInt64())
	}
}

func TestObservabilityMiddleware_UnmatchedPath(t *testing.T) {
	recorder := recordSpans(t)

	handler := middleware.ObservabilityMiddleware(nil)(http.NewServeMux())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nothing/here", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET unmatched", spans[0].Name())
	route, ok := spanAttribute(spans[0], "http.route")
	require.True(t, ok)
	assert.Equal(t, "unmatched", route.AsString())
}
