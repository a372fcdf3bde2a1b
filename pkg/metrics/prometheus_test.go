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

	r.RecordAttempt("range", "ok")
	r.RecordAttempt("range", "timeout")
	r.RecordAttempt("range", "timeout")
	r.RecordRetry("range")
	r.RecordCache("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.attempts.WithLabelValues("range", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.retries.WithLabelValues("range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cache.WithLabelValues("hit")))
}
