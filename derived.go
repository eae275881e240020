package formz

import "sync"

// scheduler coalesces derived-node notifications so a controller operation
// that writes several containers yields one consistent notification per
// derived node, computed after every direct write in the operation has
// settled. Raw Store writes still notify their own subscribers
// synchronously; only derived recomputation is deferred.
//
// A scheduler is owned by a single form instance and relies on the
// package's single-threaded execution model.
type scheduler struct {
	depth int
	queue []flushable
}

type flushable interface {
	publish()
	clearQueued()
}

// batch runs fn, deferring derived notifications until fn and any nested
// batches have returned.
func (s *scheduler) batch(fn func()) {
	s.depth++
	fn()
	if s.depth == 1 {
		// Drain the queue. Nodes enqueued while draining are appended
		// and published in arrival order. Recomputation is pure over
		// the settled source values, so a node that already published
		// stays suppressed by its queued flag: publishing it again
		// would repeat an identical value.
		for i := 0; i < len(s.queue); i++ {
			s.queue[i].publish()
		}
		for _, n := range s.queue {
			n.clearQueued()
		}
		s.queue = s.queue[:0]
	}
	s.depth--
}

func (s *scheduler) active() bool {
	return s.depth > 0
}

func (s *scheduler) mark(n flushable) {
	s.queue = append(s.queue, n)
}

// source adapts a typed container into a change-notification hook.
type source func(onChange func()) (cancel func())

// sourceOf builds a source from any Readable. The replay delivered during
// registration is not a change and is skipped.
func sourceOf[T any](r Readable[T]) source {
	return func(onChange func()) func() {
		replaying := true
		cancel := r.Subscribe(func(T) {
			if replaying {
				return
			}
			onChange()
		})
		replaying = false
		return cancel
	}
}

// derived is a read-only node recomputed from one or more source
// containers. Get always computes fresh from the sources' current values,
// so a derived value can never disagree with its inputs.
type derived[T any] struct {
	sched   *scheduler
	compute func() T
	queued  bool

	mu   sync.Mutex
	subs []subscriber[T]
	next int
}

// deriveFrom wires a derived node to its sources. A nil scheduler makes
// the node publish immediately on every source change; a form's scheduler
// coalesces publishes across a batched operation.
func deriveFrom[T any](sched *scheduler, compute func() T, sources ...source) *derived[T] {
	d := &derived[T]{sched: sched, compute: compute}
	for _, src := range sources {
		src(d.sourceChanged)
	}
	return d
}

// Derive produces a read-only container recomputed from one source.
func Derive[A, T any](a Readable[A], fn func(A) T) Readable[T] {
	return deriveFrom(nil, func() T { return fn(a.Get()) }, sourceOf(a))
}

// Derive2 produces a read-only container recomputed from two sources.
func Derive2[A, B, T any](a Readable[A], b Readable[B], fn func(A, B) T) Readable[T] {
	return deriveFrom(nil, func() T { return fn(a.Get(), b.Get()) }, sourceOf(a), sourceOf(b))
}

// Derive3 produces a read-only container recomputed from three sources.
func Derive3[A, B, C, T any](a Readable[A], b Readable[B], c Readable[C], fn func(A, B, C) T) Readable[T] {
	return deriveFrom(nil, func() T { return fn(a.Get(), b.Get(), c.Get()) }, sourceOf(a), sourceOf(b), sourceOf(c))
}

// Get computes the current value from the sources.
func (d *derived[T]) Get() T {
	return d.compute()
}

// Subscribe registers fn and immediately replays the current computed
// value to it.
func (d *derived[T]) Subscribe(fn func(T)) func() {
	d.mu.Lock()
	id := d.next
	d.next++
	d.subs = append(d.subs, subscriber[T]{id: id, fn: fn})
	d.mu.Unlock()

	fn(d.compute())

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, sub := range d.subs {
			if sub.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

func (d *derived[T]) sourceChanged() {
	if d.sched != nil && d.sched.active() {
		if !d.queued {
			d.queued = true
			d.sched.mark(d)
		}
		return
	}
	d.publish()
}

func (d *derived[T]) publish() {
	v := d.compute()

	d.mu.Lock()
	fns := make([]func(T), len(d.subs))
	for i, sub := range d.subs {
		fns[i] = sub.fn
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (d *derived[T]) clearQueued() {
	d.queued = false
}
