package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StatsData is one frame's worth of population figures.
type StatsData struct {
	Prey       int
	Predators  int
	Plants     int // available
	Consumed   int // cumulative
	PreyEnergy float32
	PredEnergy float32
}

// Graph floors; the vertical scale grows past them when a population does.
const (
	preyGraphFloor  = 60
	predGraphFloor  = 25
	plantGraphFloor = 120
)

// StatsPanel renders live counts and population history graphs.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	palette  Palette

	prey   *History
	pred   *History
	plants *History

	sections []SectionDescriptor
}

// NewStatsPanel creates a stats panel keeping historyLen samples per series.
func NewStatsPanel(x, y, width int32, historyLen int, palette Palette) *StatsPanel {
	s := &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		prey:     NewHistory(historyLen),
		pred:     NewHistory(historyLen),
		plants:   NewHistory(historyLen),
	}
	s.SetPalette(palette)
	return s
}

// SetPalette recolors the legend.
func (s *StatsPanel) SetPalette(p Palette) {
	s.palette = p
	s.sections = statsSections(p)
}

func statsSections(p Palette) []SectionDescriptor {
	stat := func(f func(StatsData) int) func(any) float32 {
		return func(d any) float32 { return float32(f(d.(StatsData))) }
	}
	return []SectionDescriptor{
		{
			Title: "Populations",
			Fields: []FieldDescriptor{
				{ID: "prey", Label: "Prey", Widget: WidgetColorSwatch, Format: "%.0f", Color: p.Prey,
					Getter: stat(func(d StatsData) int { return d.Prey })},
				{ID: "predators", Label: "Predators", Widget: WidgetColorSwatch, Format: "%.0f", Color: p.Predator,
					Getter: stat(func(d StatsData) int { return d.Predators })},
				{ID: "plants", Label: "Plants", Widget: WidgetColorSwatch, Format: "%.0f", Color: p.Plant,
					Getter: stat(func(d StatsData) int { return d.Plants })},
				{ID: "consumed", Label: "Plants consumed", Widget: WidgetText, Format: "%.0f",
					Getter: stat(func(d StatsData) int { return d.Consumed })},
			},
		},
		{
			Title: "Mean energy",
			Fields: []FieldDescriptor{
				{ID: "prey_energy", Label: "Prey", Widget: WidgetBar, Range: FieldRange{Max: 100},
					Getter: func(d any) float32 { return d.(StatsData).PreyEnergy }},
				{ID: "pred_energy", Label: "Predators", Widget: WidgetBar, Range: FieldRange{Max: 100},
					Getter: func(d any) float32 { return d.(StatsData).PredEnergy }},
			},
		},
	}
}

// Record appends the current counts to the history graphs.
func (s *StatsPanel) Record(d StatsData) {
	s.prey.Push(float32(d.Prey))
	s.pred.Push(float32(d.Predators))
	s.plants.Push(float32(d.Plants))
}

// Reset clears the history, used when the ecosystem is relaunched.
func (s *StatsPanel) Reset() {
	s.prey.Reset()
	s.pred.Reset()
	s.plants.Reset()
}

// Ceiling returns the vertical scale for a series.
func Ceiling(h *History, floor float32) float32 {
	return max(floor, h.Max()*1.1)
}

// Draw renders the panel.
func (s *StatsPanel) Draw(d StatsData) {
	r := s.renderer
	pad := r.Theme.Padding
	inner := s.width - pad*2
	graphH := int32(70)

	height := pad*2 + 3*(r.Theme.LineHeight+graphH+6) + 9*r.Theme.LineHeight + 20
	r.DrawPanel(s.x, s.y, s.width, height)

	x := s.x + pad
	y := s.y + pad
	rl.DrawText("Live statistics", x, y, 18, rl.White)
	y += r.Theme.LineHeight + 6

	for _, sec := range s.sections {
		y = r.DrawSection(x, y, sec, d, inner)
	}

	series := []struct {
		label string
		h     *History
		floor float32
		color rl.Color
	}{
		{"Prey", s.prey, preyGraphFloor, s.palette.Prey},
		{"Predators", s.pred, predGraphFloor, s.palette.Predator},
		{"Plants", s.plants, plantGraphFloor, s.palette.Plant},
	}
	for _, sr := range series {
		ceil := Ceiling(sr.h, sr.floor)
		rl.DrawText(fmt.Sprintf("%s (max %.0f)", sr.label, ceil), x, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += r.Theme.LineHeight
		y = r.DrawHistoryGraph(x, y, inner, graphH, sr.h.Values(), ceil, sr.color)
	}
}
