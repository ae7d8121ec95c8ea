package gridfx

import (
	"time"
)

type Time struct {
	Start time.Time
	Time  time.Time
	Dt    time.Duration
}

// Elapsed is the time in seconds since the app started.
func (t *Time) Elapsed() float32 {
	return float32(t.Time.Sub(t.Start).Seconds())
}

func (t *Time) DeltaSeconds() float32 {
	return float32(t.Dt.Seconds())
}

func (t *Time) advance(now time.Time) {
	t.Dt = now.Sub(t.Time)
	t.Time = now
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Start: now,
		Time:  now,
		Dt:    0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	timeResource.advance(time.Now())
}
