// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package style

import (
	"math"
	"strconv"
	"strings"
)

// Pose is the 3D pose of a transformed element. Angles are in degrees,
// translations in CSS pixels. A zero Scale means 1.
type Pose struct {
	TranslateX float64
	TranslateY float64
	TranslateZ float64
	RotateX    float64
	RotateY    float64
	RotateZ    float64
	Scale      float64

	// RotateFirst emits rotations before translateZ. Faces of a cube or
	// items on a carousel ring are rotated into place and then pushed out.
	RotateFirst bool
}

// IsIdentity reports whether p produces no transform.
func (p Pose) IsIdentity() bool {
	return Num(p.TranslateX) == "0" && Num(p.TranslateY) == "0" && Num(p.TranslateZ) == "0" &&
		Num(p.RotateX) == "0" && Num(p.RotateY) == "0" && Num(p.RotateZ) == "0" &&
		(p.Scale == 0 || Num(p.Scale) == "1")
}

// Transform converts a pose into a CSS transform value.
//
// Components appear in a fixed order: translate(x, y), then translateZ and
// the rotations (swapped when RotateFirst is set), then scale. Zero
// components are omitted and an identity pose yields "none". Every number
// is rounded to two decimals.
func Transform(p Pose) string {
	var parts []string
	if Num(p.TranslateX) != "0" || Num(p.TranslateY) != "0" {
		parts = append(parts, "translate("+Px(p.TranslateX)+", "+Px(p.TranslateY)+")")
	}
	var tz []string
	if Num(p.TranslateZ) != "0" {
		tz = append(tz, "translateZ("+Px(p.TranslateZ)+")")
	}
	var rot []string
	for _, r := range [...]struct {
		fn string
		v  float64
	}{{"rotateX", p.RotateX}, {"rotateY", p.RotateY}, {"rotateZ", p.RotateZ}} {
		if Num(r.v) != "0" {
			rot = append(rot, r.fn+"("+Deg(r.v)+")")
		}
	}
	if p.RotateFirst {
		parts = append(parts, rot...)
		parts = append(parts, tz...)
	} else {
		parts = append(parts, tz...)
		parts = append(parts, rot...)
	}
	if p.Scale != 0 && Num(p.Scale) != "1" {
		parts = append(parts, "scale("+Num(p.Scale)+")")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Num formats v rounded to two decimals with trailing zeros removed.
// Negative zero prints as "0".
func Num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Px formats v as a CSS pixel length.
func Px(v float64) string { return Num(v) + "px" }

// Deg formats v as a CSS angle.
func Deg(v float64) string { return Num(v) + "deg" }

// Seconds formats v as a CSS time in seconds.
func Seconds(v float64) string { return Num(v) + "s" }

// NormalizeDeg maps an angle into [0, 360).
func NormalizeDeg(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	// Guard against -0 and values that round up to 360.
	if v >= 360 || v == 0 {
		return 0
	}
	return v
}
