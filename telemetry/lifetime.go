package telemetry

import "github.com/pthm-cable/warren/components"

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	Kind        components.Kind
	BirthGen    int32
	ParentID    uint32
	Children    int
	TotalIntake int
	Kills       int // predators only
}

// LifetimeTracker manages per-agent lifetime statistics keyed by organism ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint32, kind components.Kind, birthGen int32, parentID uint32) {
	lt.stats[id] = &LifetimeStats{
		Kind:     kind,
		BirthGen: birthGen,
		ParentID: parentID,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordIntake adds a generation's intake, and kills for predators.
func (lt *LifetimeTracker) RecordIntake(id uint32, intake int) {
	if s := lt.stats[id]; s != nil {
		s.TotalIntake += intake
		if s.Kind == components.KindPredator {
			s.Kills += intake
		}
	}
}

// RecordChildren adds n children to a parent's count.
func (lt *LifetimeTracker) RecordChildren(id uint32, n int) {
	if s := lt.stats[id]; s != nil {
		s.Children += n
	}
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
