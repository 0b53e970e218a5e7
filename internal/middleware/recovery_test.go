package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/getfitpro/internal/middleware"
	"github.com/2beens/getfitpro/internal/telemetry/metrics"
	"github.com/2beens/getfitpro/pkg"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecovery_NonPanic(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	next := &panicRecTestHandler{}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)
	middleware.PanicRecovery(metricsManager)(next).ServeHTTP(rr, req)

	assert.True(t, next.called)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
}

func TestPanicRecovery_Panic(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	next := &panicRecTestHandler{panic: true}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)
	middleware.PanicRecovery(metricsManager)(next).ServeHTTP(rr, req)

	assert.True(t, next.called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))

	var errResp pkg.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "internal error", errResp.Error)
}

func TestPanicRecovery_AbortHandlerPassesThrough(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		middleware.PanicRecovery(metricsManager)(next).ServeHTTP(rr, req)
	})
	assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
}

type panicRecTestHandler struct {
	panic  bool
	called bool
}

func (p *panicRecTestHandler) ServeHTTP(http.ResponseWriter, *http.Request) {
	p.called = true
	if p.panic {
		panic("YOLO")
	}
}
