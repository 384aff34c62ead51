package telemetry

import "github.com/pthm-cable/meadow/components"

// LifetimeStats tracks per-entity statistics over its lifetime.
type LifetimeStats struct {
	BirthDay   int
	Kind       components.Kind
	Generation int // 0 for founders, parent+1 for offspring

	// Producers
	Children       int
	PollenProduced int
	FoodProduced   int

	// Distributors
	PollenDelivered int

	PeakEnergy float64
}

// LifetimeTracker manages per-entity lifetime statistics.
// Keys are entity IDs; entries must be removed on death before the ID is reused.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new entity.
func (lt *LifetimeTracker) Register(entityID uint32, birthDay int, kind components.Kind, generation int) {
	lt.stats[entityID] = &LifetimeStats{
		BirthDay:   birthDay,
		Kind:       kind,
		Generation: generation,
	}
}

// Get returns the lifetime stats for an entity, or nil if not found.
func (lt *LifetimeTracker) Get(entityID uint32) *LifetimeStats {
	return lt.stats[entityID]
}

// Remove removes an entity's stats and returns them.
func (lt *LifetimeTracker) Remove(entityID uint32) *LifetimeStats {
	stats := lt.stats[entityID]
	delete(lt.stats, entityID)
	return stats
}

// Generation returns the entity's generation, or 0 if untracked.
func (lt *LifetimeTracker) Generation(entityID uint32) int {
	if s := lt.stats[entityID]; s != nil {
		return s.Generation
	}
	return 0
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordPollen increments pollen produced.
func (lt *LifetimeTracker) RecordPollen(entityID uint32) {
	if s := lt.stats[entityID]; s != nil {
		s.PollenProduced++
	}
}

// RecordFood increments food produced.
func (lt *LifetimeTracker) RecordFood(entityID uint32) {
	if s := lt.stats[entityID]; s != nil {
		s.FoodProduced++
	}
}

// RecordDelivery increments pollen delivered next to a Producer.
func (lt *LifetimeTracker) RecordDelivery(entityID uint32) {
	if s := lt.stats[entityID]; s != nil {
		s.PollenDelivered++
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(entityID uint32, energy float64) {
	if s := lt.stats[entityID]; s != nil {
		if energy > s.PeakEnergy {
			s.PeakEnergy = energy
		}
	}
}

// Count returns the number of tracked entities.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// MaxGeneration returns the deepest living generation.
func (lt *LifetimeTracker) MaxGeneration() int {
	best := 0
	for _, s := range lt.stats {
		if s.Generation > best {
			best = s.Generation
		}
	}
	return best
}
