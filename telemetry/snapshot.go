package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/warren/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrInvalidSnapshot is wrapped by every consistency failure from Validate.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot holds the complete simulation state at the end of a generation.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	GridSize   int   `json:"grid_size"`
	Generation int32 `json:"generation"`

	// Resources is the grass layer in row-major order (index y*size+x).
	Resources []int `json:"resources"`

	Agents []AgentState `json:"agents"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// AgentState holds one agent's complete state.
type AgentState struct {
	ID     uint32          `json:"id"`
	Kind   components.Kind `json:"kind"`
	X      int             `json:"x"`
	Y      int             `json:"y"`
	Intake int             `json:"intake"`
	Hunger int             `json:"hunger"`

	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	BirthGen    int32  `json:"birth_gen"`
	ParentID    uint32 `json:"parent_id,omitempty"`
	Children    int    `json:"children"`
	TotalIntake int    `json:"total_intake"`
	Kills       int    `json:"kills,omitempty"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		BirthGen:    ls.BirthGen,
		ParentID:    ls.ParentID,
		Children:    ls.Children,
		TotalIntake: ls.TotalIntake,
		Kills:       ls.Kills,
	}
}

// FromJSON converts the JSON form back to LifetimeStats for an agent of the given kind.
func (lsj *LifetimeStatsJSON) FromJSON(kind components.Kind) *LifetimeStats {
	if lsj == nil {
		return nil
	}
	return &LifetimeStats{
		Kind:        kind,
		BirthGen:    lsj.BirthGen,
		ParentID:    lsj.ParentID,
		Children:    lsj.Children,
		TotalIntake: lsj.TotalIntake,
		Kills:       lsj.Kills,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Generation)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Generation, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk and checks it is self-consistent.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Validate checks the snapshot describes a restorable state: a known version,
// one resource cell per grid cell, every agent on the grid and unique IDs.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrInvalidSnapshot, s.Version, SnapshotVersion)
	}
	if s.GridSize <= 0 || len(s.Resources) != s.GridSize*s.GridSize {
		return fmt.Errorf("%w: grid size %d does not match %d resource cells", ErrInvalidSnapshot, s.GridSize, len(s.Resources))
	}
	seen := make(map[uint32]struct{}, len(s.Agents))
	for _, a := range s.Agents {
		if a.X < 0 || a.X >= s.GridSize || a.Y < 0 || a.Y >= s.GridSize {
			return fmt.Errorf("%w: agent %d at (%d,%d) outside grid", ErrInvalidSnapshot, a.ID, a.X, a.Y)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate agent ID %d", ErrInvalidSnapshot, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}
