package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/config"
)

// SetupMenu is the launch screen shown before the first ecosystem is built.
type SetupMenu struct {
	renderer      *Renderer
	screenW       int32
	screenH       int32
	width, height int32
	launch        config.LaunchConfig
}

// NewSetupMenu creates a centered setup menu seeded with initial.
func NewSetupMenu(screenW, screenH int32, initial config.LaunchConfig) *SetupMenu {
	if initial.Type == "" {
		initial.Type = config.Forest
	}
	return &SetupMenu{
		renderer: NewRenderer(),
		screenW:  screenW,
		screenH:  screenH,
		width:    520,
		height:   500,
		launch:   ClampToSliders(initial),
	}
}

// Launch returns the configuration chosen so far.
func (m *SetupMenu) Launch() config.LaunchConfig {
	return m.launch
}

// Draw renders the menu. start is true on the frame the launch button is pressed.
func (m *SetupMenu) Draw() (start, quit bool) {
	r := m.renderer
	pad := r.Theme.Padding * 2
	x0 := (m.screenW - m.width) / 2
	y0 := (m.screenH - m.height) / 2

	rl.ClearBackground(rl.Color{R: 35, G: 40, B: 45, A: 255})
	r.DrawPanel(x0, y0, m.width, m.height)

	x := x0 + pad
	y := y0 + pad
	inner := m.width - pad*2

	rl.DrawText("Ecosystem setup", x, y, 24, rl.White)
	y += 36

	y = r.DrawSectionHeader(x, y, "Ecosystem type")
	btnW := (float32(inner) - 20) / float32(len(config.EcosystemTypes))
	for i, t := range config.EcosystemTypes {
		bounds := rl.Rectangle{X: float32(x) + float32(i)*(btnW+10), Y: float32(y), Width: btnW, Height: 30}
		if gui.Button(bounds, PaletteFor(t).Name) {
			m.launch.Type = t
		}
		if m.launch.Type == t {
			rl.DrawRectangleLinesEx(bounds, 2, rl.Yellow)
		}
	}
	y += 44

	y = r.DrawSectionHeader(x, y, "Initial population and vegetation")
	y = r.launchSliders(x, y, inner, &m.launch)

	y = r.DrawSectionHeader(x, y, "Summary")
	y = r.DrawLabelValue(x, y, "Ecosystem", PaletteFor(m.launch.Type).Name)
	y = r.DrawLabelValue(x, y, "Population", fmt.Sprintf("%d prey, %d predators", m.launch.Prey, m.launch.Predators))
	y = r.DrawLabelValue(x, y, "Vegetation", fmt.Sprintf("%d plants, regrowth %.1fs", m.launch.Plants, m.launch.RegrowDelay))
	y += 10

	half := (float32(inner) - 10) / 2
	start = gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: 40}, "Launch")
	quit = gui.Button(rl.Rectangle{X: float32(x) + half + 10, Y: float32(y), Width: half, Height: 40}, "Quit")
	return start, quit
}
