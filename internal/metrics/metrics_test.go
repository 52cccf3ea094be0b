package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorsRegisteredWithDefaultRegistry(t *testing.T) {
	for _, c := range []prometheus.Collector{RequestDuration, RequestTotal, AuthEvents, AccessDenied} {
		err := prometheus.DefaultRegisterer.Register(c)
		var are prometheus.AlreadyRegisteredError
		assert.True(t, errors.As(err, &are), "collector should already be registered")
	}
}

func TestRecordAuthEvent(t *testing.T) {
	before := testutil.ToFloat64(AuthEvents.WithLabelValues("login", "failure"))
	RecordAuthEvent("login", "failure")
	after := testutil.ToFloat64(AuthEvents.WithLabelValues("login", "failure"))
	assert.Equal(t, before+1, after)
}

func TestRecordRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "unmatched", "404"))
	RecordRequest("GET", "", 404, 0.01)
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "unmatched", "404"))
	assert.Equal(t, before+1, after)
}

func TestRecordAccessDenied(t *testing.T) {
	before := testutil.ToFloat64(AccessDenied.WithLabelValues("forbidden"))
	RecordAccessDenied("forbidden")
	assert.Equal(t, before+1, testutil.ToFloat64(AccessDenied.WithLabelValues("forbidden")))
}
