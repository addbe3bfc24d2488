package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/snapshot"
	"github.com/gogpu/fx/style"
	"github.com/gogpu/fx/texture"
)

// Config is the demo configuration. Every field can be set in the TOML
// file and overridden by the flag of the same name.
type Config struct {
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	DPR        float64      `toml:"dpr"`
	Frames     int          `toml:"frames"`
	Seed       uint64       `toml:"seed"`
	Background string       `toml:"background"`
	Intensity  fx.Intensity `toml:"intensity"`
	Effects    []string     `toml:"effects"`
	// Text, when set, is also rendered as extruded 3D text.
	Text string `toml:"text"`
	// Prefs is the motion preferences file to watch.
	Prefs   string `toml:"prefs"`
	Out     string `toml:"out"`
	Metrics string `toml:"metrics"`
	Jobs    int    `toml:"jobs"`

	UserAgent string  `toml:"user_agent"`
	MemoryGB  float64 `toml:"device_memory"`
}

// DefaultConfig renders every effect at 640x360.
func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     360,
		DPR:        1,
		Frames:     30,
		Seed:       1,
		Background: "#000000",
		Intensity:  fx.Medium,
		Effects:    effectNames(),
		Out:        ".",
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if _, err := style.ParseColor(c.Background); err != nil {
		return err
	}
	for _, name := range c.Effects {
		if _, ok := effects[name]; !ok {
			return fmt.Errorf("unknown effect %q (have %s)", name, strings.Join(effectNames(), ", "))
		}
	}
	return nil
}

func (c Config) snapshotOptions() snapshot.Options {
	return snapshot.Options{
		Width:      c.Width,
		Height:     c.Height,
		DPR:        c.DPR,
		Background: style.MustColor(c.Background),
		Frames:     c.Frames,
		Seed:       c.Seed,
	}
}

// renderers builds a fresh renderer per configured effect.
func (c Config) renderers() []texture.Renderer {
	out := make([]texture.Renderer, 0, len(c.Effects))
	for _, name := range c.Effects {
		out = append(out, effects[name](c.Intensity))
	}
	return out
}

var effects = map[string]func(fx.Intensity) texture.Renderer{
	"distressed": func(i fx.Intensity) texture.Renderer { return texture.NewDistressed(i) },
	"blobs":      func(fx.Intensity) texture.Renderer { return texture.NewGradientBlobs() },
	"noise":      func(fx.Intensity) texture.Renderer { return texture.NewStaticNoise() },
	"grain":      func(fx.Intensity) texture.Renderer { return texture.NewGrain() },
	"particles":  func(i fx.Intensity) texture.Renderer { return texture.NewParticleField(i) },
	"glitch":     func(i fx.Intensity) texture.Renderer { return texture.NewGlitch(i) },
}

func effectNames() []string {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// cli holds the flags shared by every subcommand.
type cli struct {
	fs      *flag.FlagSet
	config  string
	verbose bool
	flags   Config
	effects string
}

func newCLI(name string) *cli {
	c := &cli{fs: flag.NewFlagSet(name, flag.ContinueOnError), flags: DefaultConfig()}
	fs := c.fs
	fs.StringVar(&c.config, "config", "", "TOML config file")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	fs.IntVar(&c.flags.Width, "width", c.flags.Width, "width in CSS pixels")
	fs.IntVar(&c.flags.Height, "height", c.flags.Height, "height in CSS pixels")
	fs.Float64Var(&c.flags.DPR, "dpr", c.flags.DPR, "device pixel ratio")
	fs.IntVar(&c.flags.Frames, "frames", c.flags.Frames, "frames to advance before capturing")
	fs.Uint64Var(&c.flags.Seed, "seed", c.flags.Seed, "random seed")
	fs.StringVar(&c.flags.Background, "background", c.flags.Background, "page background color")
	fs.TextVar(&c.flags.Intensity, "intensity", fx.Medium, "light, medium or heavy")
	fs.StringVar(&c.effects, "effects", strings.Join(c.flags.Effects, ","), "comma-separated effects")
	fs.StringVar(&c.flags.Text, "text", "", "also render this text in 3D")
	fs.StringVar(&c.flags.Prefs, "prefs", "", "motion preferences file to watch")
	fs.StringVar(&c.flags.Out, "out", c.flags.Out, "output directory")
	fs.StringVar(&c.flags.Metrics, "metrics", "", "write prometheus metrics to this file")
	fs.IntVar(&c.flags.Jobs, "jobs", 0, "parallel renders, 0 for GOMAXPROCS")
	fs.StringVar(&c.flags.UserAgent, "user-agent", "", "user agent to classify")
	fs.Float64Var(&c.flags.MemoryGB, "device-memory", 0, "device memory in GB")
	return c
}

// parse reads args, loads the config file if one is named and applies
// explicitly set flags on top.
func (c *cli) parse(args []string) (Config, error) {
	if err := c.fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if c.config != "" {
		var err error
		if cfg, err = LoadConfig(c.config); err != nil {
			return Config{}, err
		}
	}
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = c.flags.Width
		case "height":
			cfg.Height = c.flags.Height
		case "dpr":
			cfg.DPR = c.flags.DPR
		case "frames":
			cfg.Frames = c.flags.Frames
		case "seed":
			cfg.Seed = c.flags.Seed
		case "background":
			cfg.Background = c.flags.Background
		case "intensity":
			cfg.Intensity = c.flags.Intensity
		case "effects":
			cfg.Effects = splitList(c.effects)
		case "text":
			cfg.Text = c.flags.Text
		case "prefs":
			cfg.Prefs = c.flags.Prefs
		case "out":
			cfg.Out = c.flags.Out
		case "metrics":
			cfg.Metrics = c.flags.Metrics
		case "jobs":
			cfg.Jobs = c.flags.Jobs
		case "user-agent":
			cfg.UserAgent = c.flags.UserAgent
		case "device-memory":
			cfg.MemoryGB = c.flags.MemoryGB
		}
	})
	return cfg, cfg.validate()
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
