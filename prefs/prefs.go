// Package prefs loads user motion preferences from a TOML file and
// watches it for changes.
//
// A preferences file looks like:
//
//	reduce_motion = true
//	low_power = false
//
// A missing file, or a missing key, means the platform default.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Prefs are the user's motion preferences.
type Prefs struct {
	ReduceMotion bool `toml:"reduce_motion"`
	// LowPower overrides the device default when set.
	LowPower *bool `toml:"low_power,omitempty"`
}

// Decode parses a preferences document.
func Decode(data []byte) (Prefs, error) {
	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("prefs: decode: %w", err)
	}
	return p, nil
}

// Load reads the preferences file at path. A missing file yields zero
// Prefs and no error.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Prefs{}, nil
	}
	if err != nil {
		return Prefs{}, fmt.Errorf("prefs: %w", err)
	}
	return Decode(data)
}

// Save writes p to path.
func Save(path string, p Prefs) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}

func (p Prefs) equal(q Prefs) bool {
	if p.ReduceMotion != q.ReduceMotion || (p.LowPower == nil) != (q.LowPower == nil) {
		return false
	}
	return p.LowPower == nil || *p.LowPower == *q.LowPower
}
