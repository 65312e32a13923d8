package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected camera at (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 || cam.MinZoom != 1.0 {
		t.Errorf("expected zoom 1.0 and min zoom 1.0, got %f and %f", cam.Zoom, cam.MinZoom)
	}
}

func TestNew_LargerWorld(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// MinZoom = max(1280/2560, 720/1440) = 0.5
	if cam.MinZoom != 0.5 || cam.Zoom != 0.5 {
		t.Errorf("expected zoom 0.5, got zoom=%f min=%f", cam.Zoom, cam.MinZoom)
	}
}

func TestIdentityAtMinZoom(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	// World and screen coincide when the world matches the viewport
	for _, p := range []struct{ x, y float32 }{{0, 0}, {100, 200}, {1280, 720}} {
		sx, sy := cam.WorldToScreen(p.x, p.y)
		if !near(sx, p.x) || !near(sy, p.y) {
			t.Errorf("WorldToScreen(%v, %v) = (%v, %v)", p.x, p.y, sx, sy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)
	cam.Pan(100, 50)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInWorld(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	// At minimum zoom the whole world is visible, so panning has no effect
	cam.Pan(-500, 300)
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected pan to be ignored, got (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(-5000, -5000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("expected view clamped to top-left, got (%f, %f)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 1280) || !near(maxY, 720) {
		t.Errorf("expected view clamped to bottom-right, got (%f, %f)", maxX, maxY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
	cam.SetZoom(10)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	wx, wy := cam.ScreenToWorld(400, 300)
	cam.ZoomAt(2, 400, 300)

	gx, gy := cam.ScreenToWorld(400, 300)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("point under cursor moved: (%f,%f) -> (%f,%f)", wx, wy, gx, gy)
	}
	if cam.Zoom != 2 {
		t.Errorf("expected zoom 2, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)
	cam.Pan(-5000, -5000) // view is now [0,640] x [0,360]

	tests := []struct {
		name   string
		x, y   float32
		radius float32
		want   bool
	}{
		{"inside", 100, 100, 5, true},
		{"outside", 1000, 600, 5, false},
		{"edge overlap", 650, 100, 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.x, tt.y, tt.radius); got != tt.want {
				t.Errorf("IsVisible(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.radius, got, tt.want)
			}
		})
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.ZoomAt(3, 100, 100)
	cam.Reset()

	if cam.X != 640 || cam.Y != 360 || cam.Zoom != 1 {
		t.Errorf("expected reset to (640, 360) zoom 1, got (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
