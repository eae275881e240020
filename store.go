package formz

import "sync"

// Readable is the read side of a reactive container: current-value access
// plus subscription with immediate replay. Derived nodes expose only this
// side, so they cannot be written to.
type Readable[T any] interface {
	// Get returns the current value.
	Get() T

	// Subscribe registers fn, invokes it once immediately with the
	// current value, and returns an unsubscribe function. After
	// unsubscribing, fn receives no further notifications.
	Subscribe(fn func(T)) func()
}

// Store is a minimal observable value holder. Set and Update notify every
// current subscriber synchronously before returning, so no subscriber can
// observe a partially applied write from the same assignment.
type Store[T any] struct {
	mu   sync.Mutex
	val  T
	subs []subscriber[T]
	next int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// NewStore creates a Store holding the given initial value.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{val: initial}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}

// Set replaces the value and synchronously notifies all subscribers in
// registration order.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.val = v
	fns := s.callbacks()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Update applies f to the current value and stores the result. The
// read-modify-write is atomic: subscribers observe only the final value.
func (s *Store[T]) Update(f func(T) T) {
	s.mu.Lock()
	s.val = f(s.val)
	v := s.val
	fns := s.callbacks()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn and immediately replays the current value to it,
// so new subscribers never wait for the next change to learn current
// state.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	v := s.val
	s.mu.Unlock()

	fn(v)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// callbacks copies the subscriber functions so notification runs outside
// the lock. Callers must hold mu.
func (s *Store[T]) callbacks() []func(T) {
	fns := make([]func(T), len(s.subs))
	for i, sub := range s.subs {
		fns[i] = sub.fn
	}
	return fns
}
