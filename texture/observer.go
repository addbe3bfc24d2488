// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import "time"

// Observer receives effect lifecycle notifications, typically for metrics.
type Observer interface {
	EffectMounted(effect string)
	EffectUnmounted(effect string)
	FrameDrawn(effect string, took time.Duration)
	FellBack(effect string, reason Event)
}

// ErrorSink receives canvas failures from effects, typically an error
// containment boundary. Report returns whether the sink handled the error.
type ErrorSink interface {
	Report(err error) bool
}

type nopObserver struct{}

func (nopObserver) EffectMounted(string)             {}
func (nopObserver) EffectUnmounted(string)           {}
func (nopObserver) FrameDrawn(string, time.Duration) {}
func (nopObserver) FellBack(string, Event)           {}
