// Package metrics exports effect lifecycle counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/fx/texture"
)

// Collector records effect activity. It implements texture.Observer and
// prometheus.Collector.
type Collector struct {
	active    *prometheus.GaugeVec
	mounts    *prometheus.CounterVec
	frames    *prometheus.CounterVec
	drawTime  *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
	trips     prometheus.Counter
}

var (
	_ texture.Observer     = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

// New creates an unregistered Collector.
func New() *Collector {
	return &Collector{
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "fx",
				Name:      "effects_active",
				Help:      "Mounted effects by effect name",
			},
			[]string{"effect"},
		),
		mounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fx",
				Name:      "effect_mounts_total",
				Help:      "Effect mounts by effect name",
			},
			[]string{"effect"},
		),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fx",
				Name:      "frames_drawn_total",
				Help:      "Canvas frames drawn by effect name",
			},
			[]string{"effect"},
		),
		drawTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fx",
				Name:      "frame_draw_seconds",
				Help:      "Time spent drawing one canvas frame",
				Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
			},
			[]string{"effect"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fx",
				Name:      "fallbacks_total",
				Help:      "Switches to the CSS fallback by effect name and reason",
			},
			[]string{"effect", "reason"},
		),
		trips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fx",
			Name:      "boundary_trips_total",
			Help:      "Error boundaries switched to their fallback",
		}),
	}
}

// Register adds c to r.
func (c *Collector) Register(r prometheus.Registerer) error {
	return r.Register(c)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.active.Describe(ch)
	c.mounts.Describe(ch)
	c.frames.Describe(ch)
	c.drawTime.Describe(ch)
	c.fallbacks.Describe(ch)
	c.trips.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.active.Collect(ch)
	c.mounts.Collect(ch)
	c.frames.Collect(ch)
	c.drawTime.Collect(ch)
	c.fallbacks.Collect(ch)
	c.trips.Collect(ch)
}

// EffectMounted implements texture.Observer.
func (c *Collector) EffectMounted(effect string) {
	c.active.WithLabelValues(effect).Inc()
	c.mounts.WithLabelValues(effect).Inc()
}

// EffectUnmounted implements texture.Observer.
func (c *Collector) EffectUnmounted(effect string) {
	c.active.WithLabelValues(effect).Dec()
}

// FrameDrawn implements texture.Observer.
func (c *Collector) FrameDrawn(effect string, took time.Duration) {
	c.frames.WithLabelValues(effect).Inc()
	c.drawTime.WithLabelValues(effect).Observe(took.Seconds())
}

// FellBack implements texture.Observer.
func (c *Collector) FellBack(effect string, reason texture.Event) {
	c.fallbacks.WithLabelValues(effect, reason.String()).Inc()
}

// BoundaryTripped counts a boundary switching to its fallback. Its
// signature matches guard.Boundary.OnTrip.
func (c *Collector) BoundaryTripped(error) {
	c.trips.Inc()
}
