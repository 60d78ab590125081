package systems

// Phase identifiers, in execution order. Perf tracking and the HUD use them.
const (
	PhaseMove      = "move"
	PhaseEat       = "eat"
	PhaseSurvive   = "survive"
	PhaseReproduce = "reproduce"
	PhaseRegrow    = "regrow"
	PhaseTelemetry = "telemetry"
)

// Phase names one step of a generation for display.
type Phase struct {
	ID   string
	Name string
}

var phases = []Phase{
	{PhaseMove, "Move"},
	{PhaseEat, "Eat"},
	{PhaseSurvive, "Survive"},
	{PhaseReproduce, "Reproduce"},
	{PhaseRegrow, "Regrow"},
	{PhaseTelemetry, "Telemetry"},
}

// Phases returns the generation phases in execution order.
func Phases() []Phase {
	return append([]Phase(nil), phases...)
}

// PhaseIDs returns the phase identifiers in execution order.
func PhaseIDs() []string {
	ids := make([]string, len(phases))
	for i, p := range phases {
		ids[i] = p.ID
	}
	return ids
}

// PhaseName returns the display name of a phase, or the ID if unknown.
func PhaseName(id string) string {
	for _, p := range phases {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
