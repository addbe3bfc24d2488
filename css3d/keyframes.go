package css3d

import (
	"strconv"
	"strings"
)

// Keyframe animations referenced by primitives.
const (
	scanlineScroll  = "fx-scanline-scroll"
	hologramFlicker = "fx-hologram-flicker"
	borderShift     = "fx-border-shift"
)

// flickerSteps are the percentages at which the hologram flashes.
var flickerSteps = []int{5, 11, 21, 31, 71, 91}

// Keyframes returns the CSS @keyframes rules used by primitives.
func Keyframes() string {
	var b strings.Builder
	b.WriteString("@keyframes " + scanlineScroll + " { 0% { background-position: 0 0; } 100% { background-position: 0 100%; } }\n")
	b.WriteString("@keyframes " + hologramFlicker + " { 0% { opacity: 0; }")
	for _, p := range flickerSteps {
		b.WriteString(" " + strconv.Itoa(p-1) + "% { opacity: 0; } " + strconv.Itoa(p) + "% { opacity: 0.1; } " + strconv.Itoa(p+1) + "% { opacity: 0; }")
	}
	b.WriteString(" 100% { opacity: 0; } }\n")
	b.WriteString("@keyframes " + borderShift + " { 0% { background-position: 0% 50%; } 50% { background-position: 100% 50%; } 100% { background-position: 0% 50%; } }")
	return b.String()
}
