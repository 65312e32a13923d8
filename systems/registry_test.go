package systems

import (
	"slices"
	"testing"
)

func TestSystemRegistry_PipelineOrder(t *testing.T) {
	reg := NewSystemRegistry()

	want := []string{PhasePrey, PhasePredators, PhasePlants, PhaseTally, PhaseCull, PhaseReproduction}
	if got := reg.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if len(reg.All()) != len(want) {
		t.Errorf("All() has %d entries, want %d", len(reg.All()), len(want))
	}
}

func TestSystemRegistry_Names(t *testing.T) {
	reg := NewSystemRegistry()
	reg.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Category: "telemetry"})

	tests := []struct {
		id   string
		want string
	}{
		{PhaseCull, "Cull"},
		{"telemetry", "Telemetry"},
		{"missing", "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := reg.GetName(tt.id); got != tt.want {
				t.Errorf("GetName(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}

	if info, ok := reg.Get(PhasePlants); !ok || info.Category != "environment" {
		t.Errorf("Get(plants) = %+v, %v", info, ok)
	}
}
