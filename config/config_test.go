package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Prey.Speed != 80 || cfg.Predator.Speed != 120 {
		t.Errorf("unexpected speeds prey=%v predator=%v", cfg.Prey.Speed, cfg.Predator.Speed)
	}
	if cfg.Plants.Max != 60 {
		t.Errorf("expected plant cap 60, got %d", cfg.Plants.Max)
	}
	if cfg.Plants.RegrowInterval != 5 {
		t.Errorf("expected regrow interval 5, got %v", cfg.Plants.RegrowInterval)
	}
	if cfg.Reproduction.RollAbove != 75 || cfg.Reproduction.Range != 100 {
		t.Errorf("unexpected reproduction trial %+v", cfg.Reproduction)
	}
	if cfg.Launch.Type != Forest {
		t.Errorf("expected default type forest, got %q", cfg.Launch.Type)
	}
}

func TestLoad_WorldDefaultsToScreen(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Derived.WorldW32 != float32(cfg.Screen.Width) {
		t.Errorf("world width %v, want screen width %d", cfg.Derived.WorldW32, cfg.Screen.Width)
	}
	if cfg.Derived.WorldH32 != float32(cfg.Screen.Height) {
		t.Errorf("world height %v, want screen height %d", cfg.Derived.WorldH32, cfg.Screen.Height)
	}
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("world:\n  width: 400\n  height: 300\nplants:\n  max: 10\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}
	if cfg.Derived.WorldW32 != 400 || cfg.Derived.WorldH32 != 300 {
		t.Errorf("expected 400x300, got %vx%v", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
	if cfg.Plants.Max != 10 {
		t.Errorf("expected overlay plant cap 10, got %d", cfg.Plants.Max)
	}
	// Untouched fields keep their defaults
	if cfg.Plants.RegrowMargin != 30 {
		t.Errorf("expected default regrow margin 30, got %v", cfg.Plants.RegrowMargin)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative regrow", "plants:\n  regrow_interval: -1\n"},
		{"negative prey", "launch:\n  prey: -3\n"},
		{"wander over 100", "prey:\n  wander_chance: 150\n"},
		{"unknown type", "launch:\n  type: desert\n"},
		{"zero range", "reproduction:\n  range: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Launch.Prey = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if back.Launch.Prey != 42 {
		t.Errorf("expected prey 42 after reload, got %d", back.Launch.Prey)
	}
}

func TestParseEcosystemType(t *testing.T) {
	tests := []struct {
		in      string
		want    EcosystemType
		wantErr bool
	}{
		{"", Forest, false},
		{"forest", Forest, false},
		{"ocean", Ocean, false},
		{"air", Air, false},
		{"lava", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEcosystemType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEcosystemType(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEcosystemType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if Ocean.Index() != 1 {
		t.Errorf("expected ocean index 1, got %d", Ocean.Index())
	}
}
