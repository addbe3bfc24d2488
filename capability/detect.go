package capability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/fx"
)

var (
	mobileRE  = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)
	ieRE      = regexp.MustCompile(`MSIE|Trident`)
	chromeRE  = regexp.MustCompile(`Chrome/(\d+)`)
	firefoxRE = regexp.MustCompile(`Firefox/(\d+)`)
	safariRE  = regexp.MustCompile(`Version/(\d+).*Safari`)
)

// Minimum engine versions below which a browser counts as old.
const (
	minChrome  = 60
	minFirefox = 55
	minSafari  = 10
)

// Detect probes env and returns its snapshot. It never panics and never
// returns an error: a failed probe means the capability is absent.
// A nil env yields Full.
func Detect(env Environment) Snapshot {
	if env == nil {
		return Full
	}
	ua := safeString(env.UserAgent)

	var s Snapshot
	s.Canvas2D = probe("canvas2d", env.Canvas2D)
	if s.Canvas2D {
		s.WebGL = probe("webgl", env.WebGL)
		s.WebGL2 = probe("webgl2", env.WebGL2)
		s.WebP = probe("webp", env.WebP)
	}
	s.LowPowerDevice = IsMobile(ua) ||
		lowMemory(safeFloat(env.DeviceMemoryGB)) ||
		lowCores(safeInt(env.HardwareConcurrency))
	s.OlderBrowser = IsOlderBrowser(ua)

	fx.Logger().Info("capabilities detected", "snapshot", s)
	return s
}

// IsMobile reports whether ua looks like a mobile browser.
func IsMobile(ua string) bool {
	return mobileRE.MatchString(ua)
}

// IsOlderBrowser reports whether ua belongs to a legacy engine: Internet
// Explorer, EdgeHTML, or Chrome, Firefox or Safari below their minimum
// supported versions.
func IsOlderBrowser(ua string) bool {
	switch {
	case ieRE.MatchString(ua):
		return true
	case strings.Contains(ua, "Edge/"):
		return true
	case versionBelow(chromeRE, ua, minChrome):
		return true
	case versionBelow(firefoxRE, ua, minFirefox):
		return true
	case versionBelow(safariRE, ua, minSafari):
		return true
	}
	return false
}

func versionBelow(re *regexp.Regexp, ua string, min int) bool {
	m := re.FindStringSubmatch(ua)
	if m == nil {
		return false
	}
	v, err := strconv.Atoi(m[1])
	return err == nil && v < min
}

func lowMemory(gb float64) bool { return gb > 0 && gb < 4 }
func lowCores(n int) bool       { return n > 0 && n < 4 }

// probe runs fn and converts both errors and panics into "absent".
func probe(name string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fx.Logger().Debug("capability probe panicked", "probe", name, "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	if err := fn(); err != nil {
		fx.Logger().Debug("capability probe failed", "probe", name, "err", err)
		return false
	}
	return true
}

func safeString(fn func() string) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	return fn()
}

func safeFloat(fn func() float64) (v float64) {
	defer func() {
		if recover() != nil {
			v = 0
		}
	}()
	return fn()
}

func safeInt(fn func() int) (v int) {
	defer func() {
		if recover() != nil {
			v = 0
		}
	}()
	return fn()
}
