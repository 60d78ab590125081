// Package components defines ECS components for the simulation.
package components

// Kind distinguishes the two trophic levels.
type Kind uint8

const (
	KindPrey Kind = iota
	KindPredator

	NumKinds = 2
)

var kindNames = [NumKinds]string{"prey", "predator"}

// String returns the config name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a config name to a Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the kind by name so JSON snapshots and frames stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, ok := ParseKind(string(b))
	if !ok {
		return &UnknownNameError{What: "kind", Name: string(b)}
	}
	*k = parsed
	return nil
}

// Diet is the resource kind a species feeds on.
type Diet uint8

const (
	DietGrass Diet = iota // grass layer of the field
	DietPrey              // prey agents sharing the cell
)

// String returns the config name of the diet.
func (d Diet) String() string {
	switch d {
	case DietGrass:
		return "grass"
	case DietPrey:
		return "prey"
	default:
		return "unknown"
	}
}

// ParseDiet maps a config name to a Diet.
func ParseDiet(s string) (Diet, bool) {
	switch s {
	case "grass":
		return DietGrass, true
	case "prey":
		return DietPrey, true
	}
	return 0, false
}

// UnknownNameError reports a name that does not map to a known enum value.
type UnknownNameError struct {
	What string
	Name string
}

func (e *UnknownNameError) Error() string {
	return "unknown " + e.What + " " + `"` + e.Name + `"`
}
