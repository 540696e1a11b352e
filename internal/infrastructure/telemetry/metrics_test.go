package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInitIdempotent(t *testing.T) {
	Init()
	first := LinesReceived
	Init()
	assert.Same(t, first, LinesReceived)
}

func TestObserveHelpers(t *testing.T) {
	Init()

	ObserveLine("metrics_chan")
	ObserveLine("metrics_chan")
	assert.Equal(t, 2.0, testutil.ToFloat64(LinesReceived.WithLabelValues("metrics_chan")))

	ObserveBatch("metrics_chan", true, 3)
	ObserveBatch("metrics_chan", false, 101)
	assert.Equal(t, 1.0, testutil.ToFloat64(BatchesSent.WithLabelValues("metrics_chan")))
	assert.Equal(t, 1.0, testutil.ToFloat64(BatchesDropped.WithLabelValues("metrics_chan")))
	assert.Equal(t, 3.0, testutil.ToFloat64(LinesSent.WithLabelValues("metrics_chan")))

	ObserveReconnect("metrics_chan", "directive")
	assert.Equal(t, 1.0, testutil.ToFloat64(SessionReconnects.WithLabelValues("metrics_chan", "directive")))

	ObserveStoreError("metrics_op")
	assert.Equal(t, 1.0, testutil.ToFloat64(StoreErrors.WithLabelValues("metrics_op")))
}
