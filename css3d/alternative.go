package css3d

import (
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// ReducedMotionAlternative returns full, or alternative wrapped in a
// reduced-motion-alternative container when f asks for reduced motion.
func ReducedMotionAlternative(f policy.Flags, full, alternative style.Element) style.Element {
	if f.UseReducedMotion {
		return style.Div("reduced-motion-alternative", nil, alternative)
	}
	return full
}

// Primitive is implemented by every CSS 3D primitive.
type Primitive interface {
	Render() style.Element
}

// Choose renders full unless src asks for reduced motion.
func Choose(src policy.Source, full, alternative Primitive) style.Element {
	var f policy.Flags
	if src != nil {
		f = src.Flags()
	}
	if f.UseReducedMotion {
		return ReducedMotionAlternative(f, style.Element{}, alternative.Render())
	}
	return full.Render()
}
