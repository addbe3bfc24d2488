package fx

import "fmt"

// Intensity selects a density/contrast/offset preset. Every preset scale
// is strictly ordered Light < Medium < Heavy.
type Intensity int

const (
	// Medium is the default preset.
	Medium Intensity = iota
	Light
	Heavy
)

// String returns the preset name.
func (i Intensity) String() string {
	switch i {
	case Light:
		return "light"
	case Heavy:
		return "heavy"
	default:
		return "medium"
	}
}

// ParseIntensity parses "light", "medium" or "heavy". The empty string
// means Medium.
func ParseIntensity(s string) (Intensity, error) {
	switch s {
	case "light":
		return Light, nil
	case "medium", "":
		return Medium, nil
	case "heavy":
		return Heavy, nil
	}
	return Medium, fmt.Errorf("fx: unknown intensity %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (i Intensity) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Intensity) UnmarshalText(b []byte) error {
	v, err := ParseIntensity(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
