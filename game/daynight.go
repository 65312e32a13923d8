package game

// DayNight flips between day and night every period of simulated time.
// It is cosmetic; the simulation rules do not depend on it.
type DayNight struct {
	period  float64
	elapsed float64
	night   bool
}

// NewDayNight creates a cycle starting at day. A non-positive period defaults to 30 seconds.
func NewDayNight(periodSec float64) *DayNight {
	if periodSec <= 0 {
		periodSec = 30
	}
	return &DayNight{period: periodSec}
}

// Advance adds dt seconds and reports whether the phase changed.
func (d *DayNight) Advance(dt float32) bool {
	if dt <= 0 {
		return false
	}
	d.elapsed += float64(dt)
	flipped := false
	for d.elapsed >= d.period {
		d.elapsed -= d.period
		d.night = !d.night
		flipped = !flipped
	}
	return flipped
}

// Night reports whether the cycle is in its night phase.
func (d *DayNight) Night() bool {
	return d.night
}

// Reset returns to the start of a day.
func (d *DayNight) Reset() {
	d.elapsed = 0
	d.night = false
}
