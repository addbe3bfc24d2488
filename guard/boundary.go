// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package guard contains canvas failures so that a broken drawing surface
// degrades to CSS rendering instead of taking the page down.
package guard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/internal/notify"
	"github.com/gogpu/fx/texture"
)

// canvasKeywords identify canvas failures in errors that do not wrap
// fx.ErrCanvas, such as messages from a host runtime.
var canvasKeywords = []string{"canvas", "getContext", "drawImage", "putImageData"}

// Matches reports whether err is a canvas failure.
func Matches(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fx.ErrCanvas) {
		return true
	}
	msg := err.Error()
	for _, kw := range canvasKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// Boundary renders children until a canvas failure is reported, then
// renders fallback for the rest of its life.
type Boundary[T any] struct {
	id       string
	children T
	fallback T

	mu      sync.Mutex
	errored bool
	cause   error

	tripped notify.List[error]
}

var _ texture.ErrorSink = (*Boundary[struct{}])(nil)

// New creates a boundary. It starts on fallback when snap has no 2D
// canvas.
func New[T any](children, fallback T, snap capability.Snapshot) *Boundary[T] {
	b := &Boundary[T]{id: uuid.NewString(), children: children, fallback: fallback}
	if !snap.Canvas2D {
		b.errored = true
		b.cause = fmt.Errorf("guard: canvas unsupported: %w", fx.ErrFallbackToCSS)
		fx.Logger().Debug("boundary starts on fallback", "boundary", b.id)
	}
	return b
}

// ID returns the boundary's instance id.
func (b *Boundary[T]) ID() string { return b.id }

// Report offers err to the boundary. Canvas failures switch it to the
// fallback permanently; anything else is ignored. Report returns whether
// err was a canvas failure.
func (b *Boundary[T]) Report(err error) bool {
	if !Matches(err) {
		return false
	}
	b.mu.Lock()
	if b.errored {
		b.mu.Unlock()
		return true
	}
	b.errored, b.cause = true, err
	b.mu.Unlock()

	fx.Logger().Warn("canvas failure contained", "boundary", b.id, "err", err)
	b.tripped.Emit(err)
	return true
}

// Recover runs fn and reports a panic as an error. It returns the
// recovered error, or nil if fn returned normally.
func (b *Boundary[T]) Recover(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = fmt.Errorf("guard: panic: %w", e)
		} else {
			err = fmt.Errorf("guard: panic: %v", r)
		}
		b.Report(err)
	}()
	fn()
	return nil
}

// Errored reports whether the boundary has switched to its fallback.
func (b *Boundary[T]) Errored() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errored
}

// Err returns the failure that tripped the boundary.
func (b *Boundary[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cause
}

// Current returns fallback once the boundary has tripped and children
// before.
func (b *Boundary[T]) Current() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.errored {
		return b.fallback
	}
	return b.children
}

// OnTrip calls fn with the failure when the boundary switches to its
// fallback.
func (b *Boundary[T]) OnTrip(fn func(error)) (cancel func()) {
	return b.tripped.Add(fn)
}
