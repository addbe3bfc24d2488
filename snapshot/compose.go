package snapshot

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/gogpu/fx/style"
)

// blendMode maps a CSS mix-blend-mode keyword to a gg blend mode.
// Unknown keywords composite normally.
func blendMode(css string) gg.BlendMode {
	switch strings.TrimSpace(css) {
	case "multiply":
		return gg.BlendMultiply
	case "screen":
		return gg.BlendScreen
	case "overlay":
		return gg.BlendOverlay
	default:
		return gg.BlendNormal
	}
}

// blurRadius extracts the length of a "blur(Npx)" filter in CSS pixels.
func blurRadius(filter string) float64 {
	for _, fn := range strings.Fields(filter) {
		arg, ok := strings.CutPrefix(fn, "blur(")
		if !ok {
			continue
		}
		arg = strings.TrimSuffix(strings.TrimSuffix(arg, ")"), "px")
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil || v < 0 {
			return 0
		}
		return v
	}
	return 0
}

// paint is how a canvas element composites onto the page.
type paint struct {
	opacity float64
	blend   gg.BlendMode
	blur    float64
}

func paintOf(s style.Style) paint {
	p := paint{opacity: 1, blend: gg.BlendNormal}
	if v, ok := s.Get("opacity"); ok {
		if o, err := strconv.ParseFloat(v, 64); err == nil {
			p.opacity = max(0, min(1, o))
		}
	}
	if v, ok := s.Get("mix-blend-mode"); ok {
		p.blend = blendMode(v)
	}
	if v, ok := s.Get("filter"); ok {
		p.blur = blurRadius(v)
	}
	return p
}
