package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/internal/notify"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/prefs"
	"github.com/gogpu/fx/texture"
)

// presentInterval paces terminal repaints.
const presentInterval = 33 * time.Millisecond

// loopMotion is a motion source whose change notifications run on the
// loop goroutine.
type loopMotion struct {
	loop *frame.Loop

	mu   sync.Mutex
	on   bool
	subs notify.List[bool]
}

func (m *loopMotion) ReduceMotion() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.on
}

func (m *loopMotion) OnReduceMotionChange(fn func(bool)) func() {
	return m.subs.Add(fn)
}

// set records on and notifies subscribers from the loop.
func (m *loopMotion) set(on bool) {
	m.mu.Lock()
	changed := m.on != on
	m.on = on
	m.mu.Unlock()
	if changed {
		m.loop.Schedule(0, func(time.Duration) { m.subs.Emit(on) })
	}
}

type previewer struct {
	cfg       Config
	screen    tcell.Screen
	loop      *frame.Loop
	flags     *policy.Provider
	motion    *loopMotion
	watcher   *prefs.Watcher
	renderers []texture.Renderer

	idx    int
	effect *texture.Effect
}

func runPreview(ctx context.Context, args []string) error {
	c := newCLI("preview")
	cfg, err := c.parse(args)
	if err != nil {
		return err
	}
	if len(cfg.Effects) == 0 {
		return errors.New("no effects to preview")
	}
	// The terminal owns stdout; logs would corrupt the screen.
	fx.SetLogger(nil)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := frame.NewLoop()
	motion := &loopMotion{loop: loop}
	pv := &previewer{
		cfg:       cfg,
		screen:    screen,
		loop:      loop,
		motion:    motion,
		renderers: cfg.renderers(),
	}
	pv.flags = policy.New(capability.Full, motion)
	defer pv.flags.Close()

	if cfg.Prefs != "" {
		w, err := prefs.NewWatcher(cfg.Prefs)
		if err != nil {
			return err
		}
		defer w.Close()
		pv.watcher = w
		motion.set(w.ReduceMotion())
		w.OnReduceMotionChange(motion.set)
		if lp := w.Prefs().LowPower; lp != nil {
			pv.flags.SetLowPowerMode(*lp)
		}
		w.OnLowPowerChange(func(on bool) {
			loop.Schedule(0, func(time.Duration) { pv.flags.SetLowPowerMode(on) })
		})
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				fx.Logger().Warn("prefs watcher stopped", "err", err)
			}
		}()
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			loop.Schedule(0, func(time.Duration) { pv.handle(ev, cancel) })
		}
	}()

	pv.mount()
	present := frame.NewTask(loop, presentInterval, func(time.Duration) { pv.present() })
	present.Start()

	err = loop.Run(ctx)
	present.Stop()
	pv.effect.Unmount()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// box maps the terminal to pixels: one column by two half-block rows
// per cell, leaving the bottom row for the status line.
func (pv *previewer) box() texture.Box {
	w, h := pv.screen.Size()
	return texture.Box{Width: max(w, 1), Height: max((h-1)*2, 1), DPR: 1}
}

func (pv *previewer) mount() {
	r := pv.renderers[pv.idx]
	pv.effect = texture.NewEffect(r, pv.flags, pv.loop, texture.WithSeed(pv.cfg.Seed))
	pv.effect.Mount(pv.box())
}

func (pv *previewer) cycle(step int) {
	pv.effect.Unmount()
	n := len(pv.renderers)
	pv.idx = ((pv.idx+step)%n + n) % n
	// Renderers keep per-size state, so each visit starts fresh.
	pv.renderers[pv.idx] = effects[pv.cfg.Effects[pv.idx]](pv.cfg.Intensity)
	pv.mount()
}

func (pv *previewer) handle(ev tcell.Event, quit func()) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		pv.screen.Sync()
		pv.effect.Resize(pv.box())
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			quit()
		case tcell.KeyRight:
			pv.cycle(1)
		case tcell.KeyLeft:
			pv.cycle(-1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				quit()
			case 'n':
				pv.cycle(1)
			case 'p':
				pv.cycle(-1)
			case 'r':
				pv.toggleMotion()
			case 'l':
				pv.flags.SetLowPowerMode(!pv.flags.Flags().IsLowPowerMode)
			}
		}
	}
}

// toggleMotion flips reduced motion. With a preferences file the change
// is written there and arrives back through the watcher.
func (pv *previewer) toggleMotion() {
	on := !pv.motion.ReduceMotion()
	if pv.watcher == nil {
		pv.motion.set(on)
		return
	}
	p := pv.watcher.Prefs()
	p.ReduceMotion = on
	if err := prefs.Save(pv.watcher.Path(), p); err != nil {
		fx.Logger().Warn("save prefs", "err", err)
	}
}

func (pv *previewer) present() {
	s := pv.screen
	s.Clear()
	w, h := s.Size()

	if surf := pv.effect.Surface(); surf != nil {
		pw, ph := surf.PixelSize()
		px := surf.Pixels()
		at := func(x, y int) tcell.Color {
			if x >= pw || y >= ph {
				return tcell.ColorBlack
			}
			i := (y*pw + x) * 4
			// Premultiplied channels are already composited over black.
			return tcell.NewRGBColor(int32(px[i]), int32(px[i+1]), int32(px[i+2]))
		}
		for y := 0; y < h-1; y++ {
			for x := 0; x < w; x++ {
				st := tcell.StyleDefault.Foreground(at(x, 2*y)).Background(at(x, 2*y+1))
				s.SetContent(x, y, '▀', nil, st)
			}
		}
	} else {
		msg := "CSS fallback: " + pv.effect.Fallback().Class
		drawText(s, max((w-len(msg))/2, 0), (h-1)/2, tcell.StyleDefault, msg)
	}

	f := pv.flags.Flags()
	status := fmt.Sprintf(" %s [%s] reduced=%v lowpower=%v  n/p switch  r motion  l power  q quit",
		pv.effect.Name(), pv.effect.Mode(), f.UseReducedMotion, f.IsLowPowerMode)
	drawText(s, 0, h-1, tcell.StyleDefault.Reverse(true), status)
	s.Show()
}

func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
