package ui

import (
	"fmt"
	"time"
)

// PerfLine is one update phase in the perf panel.
type PerfLine struct {
	Name string
	Pct  float64
}

// PerfData holds what the perf panel shows.
type PerfData struct {
	AvgTick     time.Duration
	MaxTick     time.Duration
	TicksPerSec float64
	Phases      []PerfLine
}

// DrawPerfPanel renders tick timing with a bar per phase.
func (r *Renderer) DrawPerfPanel(x, y, width int32, d PerfData) {
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.HeaderFontSize + 6 + r.Theme.LineHeight*int32(3+len(d.Phases))
	r.DrawPanel(x, y, width, height)

	x += pad
	y = r.DrawSectionHeader(x, y+pad, "Performance")
	y = r.DrawLabelValue(x, y, "Avg tick", d.AvgTick.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Max tick", d.MaxTick.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Ticks/s", fmt.Sprintf("%.0f", d.TicksPerSec))
	for _, p := range d.Phases {
		y = r.DrawBar(x, y, p.Name, float32(p.Pct), FieldRange{Max: 100}, width-pad*2)
	}
}
