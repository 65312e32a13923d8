package config

import "fmt"

// EcosystemType selects the viewer palette. It has no effect on simulation rules.
type EcosystemType string

const (
	Forest EcosystemType = "forest"
	Ocean  EcosystemType = "ocean"
	Air    EcosystemType = "air"
)

// EcosystemTypes lists the selectable types in menu order.
var EcosystemTypes = []EcosystemType{Forest, Ocean, Air}

// ParseEcosystemType returns the type named by s. An empty string means Forest.
func ParseEcosystemType(s string) (EcosystemType, error) {
	if s == "" {
		return Forest, nil
	}
	for _, t := range EcosystemTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown ecosystem type %q", s)
}

// Index returns the menu position of t, or 0 if t is unknown.
func (t EcosystemType) Index() int {
	for i, c := range EcosystemTypes {
		if c == t {
			return i
		}
	}
	return 0
}
