package policy

import "github.com/gogpu/fx/style"

// toggleAccent is the switch accent color.
var toggleAccent = style.MustColor("#00ff41")

// Toggle is the view model of the user-facing low-power switch.
type Toggle struct {
	p *Provider
}

// NewToggle returns a Toggle writing to p.
func NewToggle(p *Provider) Toggle {
	return Toggle{p: p}
}

// On reports whether low-power mode is on.
func (t Toggle) On() bool {
	return t.p.Flags().IsLowPowerMode
}

// Flip inverts low-power mode.
func (t Toggle) Flip() {
	t.p.SetLowPowerMode(!t.On())
}

// Render returns the switch with its label and, while the OS asks for
// reduced motion, an indicator.
func (t Toggle) Render() style.Element {
	f := t.p.Flags()

	track := style.Style{{Property: "background", Value: "#374151"}}
	knob := style.Style{{Property: "background", Value: "#9ca3af"}}
	if f.IsLowPowerMode {
		track = track.Set("background", toggleAccent.WithAlpha(0.3).CSS())
		knob = knob.Set("background", toggleAccent.Hex()).Set("transform", style.Transform(style.Pose{TranslateX: 16}))
	}

	label := style.Element{
		Tag:   "label",
		Class: "performance-toggle__switch",
		Children: []style.Element{
			style.Div("track", track, style.Div("knob", knob)),
			{Tag: "span", Class: "label", Text: "LOW_POWER_MODE"},
		},
	}
	root := style.Div("performance-toggle", nil, label)
	if f.UseReducedMotion {
		root.Children = append(root.Children, style.Element{
			Tag:   "div",
			Class: "reduced-motion-indicator",
			Text:  "REDUCED_MOTION_ACTIVE",
		})
	}
	return root
}
