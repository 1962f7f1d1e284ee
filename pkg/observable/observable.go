// Package observable provides a value holder that notifies its subscribers whenever the value changes.
//
// Notifications are delivered synchronously, on the goroutine that calls Set, in subscription order.
package observable

import (
	"slices"
	"sync"
)

// Value holds a single value of type T. The zero value is not usable; use New.
type Value[T any] struct {
	value     T
	set       bool
	equal     func(a, b T) bool
	listeners []*listener[T]
	lock      sync.RWMutex
}

type listener[T any] struct {
	f func(T)
}

// Option configures a Value
type Option[T any] func(*Value[T])

// WithEquality suppresses notifications when Set is called with a value equal to the current one.
// Without it, every call to Set notifies the subscribers.
func WithEquality[T any](equal func(a, b T) bool) Option[T] {
	return func(v *Value[T]) {
		v.equal = equal
	}
}

// New returns an unset Value
func New[T any](options ...Option[T]) *Value[T] {
	v := Value[T]{}
	for _, option := range options {
		option(&v)
	}
	return &v
}

// Get returns the current value. ok is false if the value was never set.
func (v *Value[T]) Get() (value T, ok bool) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return v.value, v.set
}

// Set stores value and calls every subscriber with it.
func (v *Value[T]) Set(value T) {
	v.lock.Lock()
	if v.set && v.equal != nil && v.equal(v.value, value) {
		v.lock.Unlock()
		return
	}
	v.value = value
	v.set = true
	listeners := slices.Clone(v.listeners)
	v.lock.Unlock()

	for _, l := range listeners {
		l.f(value)
	}
}

// Subscribe registers f to be called on every change. The current value is not replayed.
// The returned function removes the subscription.
func (v *Value[T]) Subscribe(f func(T)) (unsubscribe func()) {
	l := &listener[T]{f: f}
	v.lock.Lock()
	v.listeners = append(v.listeners, l)
	v.lock.Unlock()

	return func() {
		v.lock.Lock()
		defer v.lock.Unlock()
		v.listeners = slices.DeleteFunc(v.listeners, func(entry *listener[T]) bool { return entry == l })
	}
}

// Subscribers returns the current number of subscribers
func (v *Value[T]) Subscribers() int {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return len(v.listeners)
}
