package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })

	clock := time.Unix(0, 0)
	p := NewProfiler()
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	frame := raster.Stats{Triangles: 12, Culled: 2, Tested: 400, Written: 100, ObjectsCulled: 3}
	for range 9 {
		clock = clock.Add(100 * time.Millisecond)
		_, logged := p.Tick(frame)
		require.False(t, logged)
	}

	clock = clock.Add(100 * time.Millisecond)
	s, logged := p.Tick(frame)
	require.True(t, logged)
	assert.InDelta(t, 10.0, s.FPS, 1e-9)
	assert.Equal(t, frame, s.Raster)
	assert.Contains(t, buf.String(), "raster.written=100")
	assert.Contains(t, buf.String(), "raster.objects_culled=3")

	clock = clock.Add(100 * time.Millisecond)
	_, logged = p.Tick(frame)
	assert.False(t, logged, "window restarts after logging")
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)
	p.SetInterval(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
