package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDigestCountsRepeats(t *testing.T) {
	d := NewErrorDigest(10)
	d.Add("error", "fetch failed", nil, "a.go:1")
	d.Add("error", "fetch failed", map[string]interface{}{"code": 433}, "a.go:1")
	d.Add("warn", "retrying", nil, "b.go:2")

	snap := d.Snapshot()
	require.Len(t, snap, 2)
	counts := map[string]int{}
	for _, e := range snap {
		counts[e.Message] = e.Count
	}
	assert.Equal(t, 2, counts["fetch failed"])
	assert.Equal(t, 1, counts["retrying"])
}

func TestErrorDigestEvictsLeastRecent(t *testing.T) {
	d := NewErrorDigest(2)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	d.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Second) }

	d.Add("error", "one", nil, "x")
	d.Add("error", "two", nil, "x")
	d.Add("error", "three", nil, "x")

	snap := d.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "three", snap[0].Message)
	assert.Equal(t, "two", snap[1].Message)
}

func TestLoggerFeedsDigest(t *testing.T) {
	l := Nop()
	d := NewErrorDigest(5)
	l.AttachDigest(d)

	l.Info("ignored")
	l.Error("upstream failed", Error(errors.New("boom")), Int("code", 11))

	snap := d.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "boom", snap[0].Fields["error"])
	assert.Equal(t, 11, snap[0].Fields["code"])
}
