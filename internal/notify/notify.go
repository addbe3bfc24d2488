// Package notify implements the listener lists used for change
// broadcasts across fx.
package notify

import (
	"slices"
	"sync"
)

// List is a set of listeners for values of type T. The zero value is
// ready to use.
type List[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []sub[T]
}

type sub[T any] struct {
	id uint64
	fn func(T)
}

// Add registers fn and returns a function that removes it.
func (l *List[T]) Add(fn func(T)) (remove func()) {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, sub[T]{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.subs = slices.DeleteFunc(l.subs, func(s sub[T]) bool { return s.id == id })
			l.mu.Unlock()
		})
	}
}

// Emit calls every listener with v in registration order. Listeners run
// outside the lock and may add or remove listeners.
func (l *List[T]) Emit(v T) {
	l.mu.Lock()
	subs := slices.Clone(l.subs)
	l.mu.Unlock()
	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of registered listeners.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
