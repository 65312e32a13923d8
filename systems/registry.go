package systems

// Update phase IDs. The ecosystem update reports these to its phase timer in this order.
const (
	PhasePrey         = "prey"
	PhasePredators    = "predators"
	PhasePlants       = "plants"
	PhaseTally        = "tally"
	PhaseCull         = "cull"
	PhaseReproduction = "reproduction"
)

// SystemInfo describes an update phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "behavior", "lifecycle")
}

// SystemRegistry holds metadata about all update phases.
// This centralizes naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the phases in pipeline order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhasePrey, Name: "Prey", Description: "Flee, graze or wander, then move and metabolize", Category: "behavior"})
	r.Register(SystemInfo{ID: PhasePredators, Name: "Predators", Description: "Hunt or wander, then move and metabolize", Category: "behavior"})
	r.Register(SystemInfo{ID: PhasePlants, Name: "Plants", Description: "Regrows one plant per interval under the cap", Category: "environment"})
	r.Register(SystemInfo{ID: PhaseTally, Name: "Tally", Description: "Counts newly consumed plants", Category: "environment"})
	r.Register(SystemInfo{ID: PhaseCull, Name: "Cull", Description: "Removes dead animals", Category: "lifecycle"})
	r.Register(SystemInfo{ID: PhaseReproduction, Name: "Reproduction", Description: "Rolls births for eligible animals", Category: "lifecycle"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
