package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/config"
)

// Palette holds the colors used to draw one ecosystem type.
type Palette struct {
	Name     string
	DayBg    rl.Color
	NightBg  rl.Color
	Plant    rl.Color
	Prey     rl.Color
	Predator rl.Color
	Accent   rl.Color // prey ears, fish fins, bird wings
}

var palettes = map[config.EcosystemType]Palette{
	config.Forest: {
		Name:     "Forest",
		DayBg:    rl.Color{R: 92, G: 140, B: 70, A: 255},
		NightBg:  rl.Color{R: 20, G: 36, B: 28, A: 255},
		Plant:    rl.Color{R: 46, G: 190, B: 64, A: 255},
		Prey:     rl.Color{R: 214, G: 196, B: 170, A: 255},
		Predator: rl.Color{R: 110, G: 110, B: 120, A: 255},
		Accent:   rl.Color{R: 240, G: 200, B: 200, A: 255},
	},
	config.Ocean: {
		Name:     "Ocean",
		DayBg:    rl.Color{R: 40, G: 110, B: 170, A: 255},
		NightBg:  rl.Color{R: 8, G: 22, B: 48, A: 255},
		Plant:    rl.Color{R: 60, G: 160, B: 110, A: 255},
		Prey:     rl.Color{R: 250, G: 170, B: 60, A: 255},
		Predator: rl.Color{R: 150, G: 160, B: 175, A: 255},
		Accent:   rl.Color{R: 255, G: 220, B: 120, A: 255},
	},
	config.Air: {
		Name:     "Air",
		DayBg:    rl.Color{R: 150, G: 200, B: 240, A: 255},
		NightBg:  rl.Color{R: 30, G: 30, B: 70, A: 255},
		Plant:    rl.Color{R: 230, G: 120, B: 170, A: 255},
		Prey:     rl.Color{R: 240, G: 240, B: 120, A: 255},
		Predator: rl.Color{R: 120, G: 80, B: 50, A: 255},
		Accent:   rl.Color{R: 255, G: 255, B: 255, A: 255},
	},
}

// PaletteFor returns the palette of t, falling back to the forest palette.
func PaletteFor(t config.EcosystemType) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[config.Forest]
}

// Background returns the day or night background color.
func (p Palette) Background(night bool) rl.Color {
	if night {
		return p.NightBg
	}
	return p.DayBg
}
