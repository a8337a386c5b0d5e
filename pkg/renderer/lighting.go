package renderer

import (
	"fmt"
	"strings"
)

// LightingMode selects which term of the direct lighting equation is displayed
type LightingMode int

const (
	ObservedArea LightingMode = iota // Lambert cosine only
	Radiance                         // Incident radiance only
	BRDF                             // Material response only
	Combined                         // Radiance * BRDF * cosine
)

var lightingModeNames = [...]string{
	ObservedArea: "observed-area",
	Radiance:     "radiance",
	BRDF:         "brdf",
	Combined:     "combined",
}

// String returns the mode name
func (m LightingMode) String() string {
	if m < 0 || int(m) >= len(lightingModeNames) {
		return fmt.Sprintf("LightingMode(%d)", int(m))
	}
	return lightingModeNames[m]
}

// Cycle returns the next mode, wrapping from Combined back to ObservedArea
func (m LightingMode) Cycle() LightingMode {
	return (m + 1) % LightingMode(len(lightingModeNames))
}

// ParseLightingMode parses a mode name, ignoring case and separators
func ParseLightingMode(name string) (LightingMode, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
	for i, candidate := range lightingModeNames {
		if strings.ReplaceAll(candidate, "-", "") == normalized {
			return LightingMode(i), nil
		}
	}
	return Combined, fmt.Errorf("unknown lighting mode %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (m LightingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *LightingMode) UnmarshalText(text []byte) error {
	mode, err := ParseLightingMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
