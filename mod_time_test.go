package gridfx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := &Time{Start: start, Time: start}

	tm.advance(start.Add(250 * time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, tm.Dt)
	assert.InDelta(t, 0.25, tm.DeltaSeconds(), 1e-6)
	assert.InDelta(t, 0.25, tm.Elapsed(), 1e-6)

	tm.advance(start.Add(2 * time.Second))
	assert.InDelta(t, 1.75, tm.DeltaSeconds(), 1e-6)
	assert.InDelta(t, 2.0, tm.Elapsed(), 1e-6)
}

func TestTimeModule_Install(t *testing.T) {
	app := NewApp().UseModules(TimeModule{})

	tm, ok := Resource[Time](app)
	require.True(t, ok)
	before := tm.Time

	app.Step()
	assert.False(t, tm.Time.Before(before))
	assert.GreaterOrEqual(t, tm.Elapsed(), float32(0))
}
