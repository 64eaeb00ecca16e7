package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordForecast("ok")
	r.RecordForecast("ok")
	r.RecordForecast("skipped")
	r.RecordUpstream("yahoo", false)
	r.RecordLastPrice("AAPL", 190.25)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.forecasts.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.forecasts.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstream.WithLabelValues("yahoo", "error")))
	assert.Equal(t, 190.25, testutil.ToFloat64(r.lastPrice.WithLabelValues("AAPL")))
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) }, "duplicate registration must fail loudly")
	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}
