package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayStatsPanel   OverlayID = "stats_panel"
	OverlayControlPanel OverlayID = "control_panel"
	OverlayEnergyBars   OverlayID = "energy_bars"
	OverlayDetectRadius OverlayID = "detect_radius"
	OverlayThreatRadius OverlayID = "threat_radius"
	OverlayVelocity     OverlayID = "velocity"
	OverlayPerf         OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "S", "V")
	Enabled     bool        // Initial state
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayStatsPanel,
		Name:        "Statistics",
		Description: "Population counts and history graphs",
		Key:         rl.KeyS,
		KeyLabel:    "S",
		Enabled:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayControlPanel,
		Name:        "Controls",
		Description: "Pause, relaunch and quit with relaunch parameters",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Enabled:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayEnergyBars,
		Name:        "Energy",
		Description: "Energy bar above every animal",
		Key:         rl.KeyE,
		KeyLabel:    "E",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayDetectRadius,
		Name:        "Detection",
		Description: "Food and prey detection radius",
		Key:         rl.KeyD,
		KeyLabel:    "D",
		Exclusive:   []OverlayID{OverlayThreatRadius},
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayThreatRadius,
		Name:        "Threat",
		Description: "Radius at which prey notice predators",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Exclusive:   []OverlayID{OverlayDetectRadius},
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayVelocity,
		Name:        "Velocity",
		Description: "Velocity vector of every animal",
		Key:         rl.KeyV,
		KeyLabel:    "V",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Perf",
		Description: "Tick timing by update phase",
		Key:         rl.KeyP,
		KeyLabel:    "P",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Enabled
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the enabled overlay IDs in registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			result = append(result, desc.ID)
		}
	}
	return result
}
