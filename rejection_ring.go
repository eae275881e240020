package formz

import (
	"sync"
	"time"
)

// Rejection records one submit blocked by validation.
type Rejection struct {
	// At is when the submit was blocked.
	At time.Time

	// Errors holds the per-field messages that blocked the submit.
	Errors Errors
}

// rejectionRing is a ring buffer of recent submit rejections.
type rejectionRing struct {
	mu         sync.RWMutex
	rejections []Rejection
	size       int
	head       int
	count      int
}

// newRejectionRing creates a rejection ring with the given capacity.
// If size is 0, history is disabled and the ring is nil.
func newRejectionRing(size int) *rejectionRing {
	if size <= 0 {
		return nil
	}
	return &rejectionRing{
		rejections: make([]Rejection, size),
		size:       size,
	}
}

// push records a rejection, evicting the oldest when full.
func (r *rejectionRing) push(rej Rejection) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rejections[r.head] = rej
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// clear drops all recorded rejections.
func (r *rejectionRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rejections {
		r.rejections[i] = Rejection{}
	}
	r.head = 0
	r.count = 0
}

// last returns the most recent rejection.
func (r *rejectionRing) last() (Rejection, bool) {
	if r == nil {
		return Rejection{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return Rejection{}, false
	}
	return r.rejections[(r.head-1+r.size)%r.size], true
}

// all returns the recorded rejections, oldest first.
func (r *rejectionRing) all() []Rejection {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]Rejection, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.rejections[(start+i)%r.size]
	}
	return result
}
