package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/config"
)

// Range bounds a launch slider.
type Range struct {
	Min, Max float32
}

// Clamp limits v to the range.
func (r Range) Clamp(v float32) float32 {
	return min(max(v, r.Min), r.Max)
}

// Slider ranges shared by the setup menu and the control panel.
var (
	PreyRange        = Range{Min: 5, Max: 50}
	PredatorRange    = Range{Min: 1, Max: 20}
	PlantRange       = Range{Min: 10, Max: 100}
	RegrowDelayRange = Range{Min: 1, Max: 10}
)

// ClampToSliders pulls every launch value into its slider range.
func ClampToSliders(l config.LaunchConfig) config.LaunchConfig {
	l.Prey = int(PreyRange.Clamp(float32(l.Prey)))
	l.Predators = int(PredatorRange.Clamp(float32(l.Predators)))
	l.Plants = int(PlantRange.Clamp(float32(l.Plants)))
	l.RegrowDelay = float64(RegrowDelayRange.Clamp(float32(l.RegrowDelay)))
	return l
}

// launchSliders draws the four launch sliders and returns the new Y.
func (r *Renderer) launchSliders(x, y, width int32, l *config.LaunchConfig) int32 {
	intSlider := func(label string, v *int, rng Range) {
		rl.DrawText(fmt.Sprintf("%s: %d", label, *v), x, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += r.Theme.LineHeight
		bounds := rl.Rectangle{X: float32(x + 30), Y: float32(y), Width: float32(width - 60), Height: 18}
		got := gui.SliderBar(bounds, fmt.Sprint(rng.Min), fmt.Sprint(rng.Max), float32(*v), rng.Min, rng.Max)
		*v = int(math.Round(float64(got)))
		y += 26
	}

	intSlider("Prey", &l.Prey, PreyRange)
	intSlider("Predators", &l.Predators, PredatorRange)
	intSlider("Plants", &l.Plants, PlantRange)

	rl.DrawText(fmt.Sprintf("Plant regrowth: %.1fs", l.RegrowDelay), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	bounds := rl.Rectangle{X: float32(x + 30), Y: float32(y), Width: float32(width - 60), Height: 18}
	got := gui.SliderBar(bounds, "1s", "10s", float32(l.RegrowDelay), RegrowDelayRange.Min, RegrowDelayRange.Max)
	l.RegrowDelay = math.Round(float64(got)*10) / 10
	return y + 26
}

// ControlActions reports the buttons pressed this frame.
type ControlActions struct {
	TogglePause bool
	Relaunch    bool
	Quit        bool
}

// ControlPanel renders pause, relaunch and quit plus the relaunch parameters.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	launch   config.LaunchConfig
}

// NewControlPanel creates a control panel seeded with the running launch config.
func NewControlPanel(x, y, width int32, launch config.LaunchConfig) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		launch:   ClampToSliders(launch),
	}
}

// Launch returns the parameters the next relaunch will use.
func (c *ControlPanel) Launch() config.LaunchConfig {
	return c.launch
}

// Draw renders the panel and returns the actions taken.
func (c *ControlPanel) Draw(paused bool) ControlActions {
	r := c.renderer
	pad := r.Theme.Padding
	btnH := float32(32)
	inner := float32(c.width - pad*2)

	r.DrawPanel(c.x, c.y, c.width, 380)

	x := c.x + pad
	y := c.y + pad
	rl.DrawText("Controls", x, y, 18, rl.White)
	y += r.Theme.LineHeight + 8

	var act ControlActions
	label := "Pause"
	if paused {
		label = "Resume"
	}
	button := func(text string) bool {
		pressed := gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: btnH}, text)
		y += int32(btnH) + 6
		return pressed
	}
	act.TogglePause = button(label)
	act.Relaunch = button("Relaunch")
	act.Quit = button("Quit")

	y += 6
	y = r.DrawSectionHeader(x, y, "Relaunch parameters")
	c.renderer.launchSliders(x, y, c.width-pad*2, &c.launch)

	return act
}
