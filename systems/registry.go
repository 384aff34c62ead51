package systems

// Pass IDs in the order the scheduler runs them each day.
const (
	PassSeason       = "season"
	PassProducers    = "producers"
	PassDistributors = "distributors"
	PassCorpses      = "corpses"
	PassFood         = "food"
	PassPollen       = "pollen"
	PassTelemetry    = "telemetry"
)

// PassInfo describes one scheduler pass for perf tracking and logs.
type PassInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this pass does
	Category    string // Grouping (e.g., "entities", "resources")
}

// PassRegistry holds pass metadata in execution order.
// This centralizes naming so the scheduler and perf tracker stay in sync.
type PassRegistry struct {
	passes []PassInfo
	byID   map[string]PassInfo
}

// NewPassRegistry creates a registry with all daily passes.
func NewPassRegistry() *PassRegistry {
	reg := &PassRegistry{byID: make(map[string]PassInfo)}
	reg.Register(PassInfo{ID: PassSeason, Name: "Season", Description: "Monthly temperature shift and push", Category: "environment"})
	reg.Register(PassInfo{ID: PassProducers, Name: "Producers", Description: "Energy economy, production and reproduction", Category: "entities"})
	reg.Register(PassInfo{ID: PassDistributors, Name: "Distributors", Description: "Movement and pollen transport", Category: "entities"})
	reg.Register(PassInfo{ID: PassCorpses, Name: "Corpses", Description: "Corpse decay", Category: "resources"})
	reg.Register(PassInfo{ID: PassFood, Name: "Food", Description: "Food decay", Category: "resources"})
	reg.Register(PassInfo{ID: PassPollen, Name: "Pollen", Description: "Grounded pollen decay", Category: "resources"})
	reg.Register(PassInfo{ID: PassTelemetry, Name: "Telemetry", Description: "Window statistics", Category: "internal"})
	return reg
}

// Register adds a pass to the registry.
func (r *PassRegistry) Register(info PassInfo) {
	r.passes = append(r.passes, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a pass ID.
// Falls back to the ID itself if not found.
func (r *PassRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// ByCategory returns passes filtered by category.
func (r *PassRegistry) ByCategory(category string) []PassInfo {
	var result []PassInfo
	for _, info := range r.passes {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all pass IDs in execution order.
func (r *PassRegistry) IDs() []string {
	ids := make([]string, len(r.passes))
	for i, info := range r.passes {
		ids[i] = info.ID
	}
	return ids
}
