package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/ecosystem"
	"github.com/pthm-cable/ecosim/ui"
)

// drawTriangle draws a filled triangle in either winding.
// raylib culls triangles not given in counter-clockwise screen order.
func drawTriangle(a, b, c rl.Vector2, color rl.Color) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, color)
}

func v2(x, y float32) rl.Vector2 {
	return rl.Vector2{X: x, Y: y}
}

// petals are flower petal offsets in units of the plant radius.
var petals = [5][2]float32{{0, -0.5}, {0.5, -0.1}, {0.3, 0.45}, {-0.3, 0.45}, {-0.5, -0.1}}

// drawPlant draws one available plant as a bush, a kelp stalk or a flower.
func drawPlant(p ecosystem.PlantView, size float32, t config.EcosystemType, pal ui.Palette) {
	r := size / 2
	switch t {
	case config.Ocean:
		stalk := rl.Color{R: pal.Plant.R / 2, G: pal.Plant.G / 2, B: pal.Plant.B / 2, A: 255}
		rl.DrawLineEx(v2(p.X, p.Y+r), v2(p.X-r*0.3, p.Y-r), 4, stalk)
		rl.DrawEllipse(int32(p.X-r*0.2), int32(p.Y), r*0.35, r*0.8, pal.Plant)
		rl.DrawEllipse(int32(p.X+r*0.25), int32(p.Y+r*0.2), r*0.3, r*0.6, pal.Plant)
	case config.Air:
		for _, o := range petals {
			rl.DrawCircleV(v2(p.X+o[0]*r, p.Y+o[1]*r), r*0.35, pal.Plant)
		}
		rl.DrawCircleV(v2(p.X, p.Y), r*0.3, pal.Accent)
	default:
		rl.DrawRectangle(int32(p.X-r*0.12), int32(p.Y), int32(r*0.24)+1, int32(r), rl.Brown)
		rl.DrawCircleV(v2(p.X, p.Y-r*0.2), r*0.7, pal.Plant)
		rl.DrawCircleV(v2(p.X-r*0.45, p.Y+r*0.1), r*0.5, pal.Plant)
		rl.DrawCircleV(v2(p.X+r*0.45, p.Y+r*0.1), r*0.5, pal.Plant)
	}
}

// drawAnimal draws one animal facing its direction of travel.
// The sprite is mirrored when the animal moves left.
func drawAnimal(a ecosystem.AnimalView, size float32, body, accent rl.Color, t config.EcosystemType) {
	dir := float32(1)
	if a.FacingLeft() {
		dir = -1
	}
	r := size / 2
	x, y := a.X, a.Y
	eye := v2(x+dir*r*0.45, y-r*0.1)

	switch t {
	case config.Ocean:
		// fish: tail fin behind, body ellipse, eye in front
		drawTriangle(v2(x-dir*r*0.6, y), v2(x-dir*r, y-r*0.45), v2(x-dir*r, y+r*0.45), accent)
		rl.DrawEllipse(int32(x), int32(y), r*0.75, r*0.42, body)
	case config.Air:
		// bird: two wings over a small body, beak in front
		drawTriangle(v2(x-r*0.2, y), v2(x-r*0.9, y-r*0.6), v2(x+r*0.1, y-r*0.15), accent)
		drawTriangle(v2(x+r*0.2, y), v2(x+r*0.9, y-r*0.6), v2(x-r*0.1, y-r*0.15), accent)
		rl.DrawEllipse(int32(x), int32(y), r*0.5, r*0.3, body)
		drawTriangle(v2(x+dir*r*0.45, y-r*0.08), v2(x+dir*r*0.75, y), v2(x+dir*r*0.45, y+r*0.08), rl.Orange)
	default:
		// land animal: body, head in front, ears on the head
		rl.DrawEllipse(int32(x), int32(y), r*0.7, r*0.45, body)
		hx := x + dir*r*0.6
		hy := y - r*0.3
		rl.DrawCircleV(v2(hx, hy), r*0.32, body)
		drawTriangle(v2(hx-r*0.15, hy-r*0.2), v2(hx-r*0.05, hy-r*0.65), v2(hx+r*0.05, hy-r*0.2), accent)
		drawTriangle(v2(hx+r*0.05, hy-r*0.2), v2(hx+r*0.15, hy-r*0.65), v2(hx+r*0.25, hy-r*0.2), accent)
		eye = v2(hx+dir*r*0.15, hy)
	}

	rl.DrawCircleV(eye, max(r*0.07, 1.5), rl.Black)
}
