package formz

import (
	"testing"
	"time"
)

func TestRejectionRing_PushAndAll(t *testing.T) {
	ring := newRejectionRing(3)

	ring.push(Rejection{Errors: Errors{"a": "first"}})
	ring.push(Rejection{Errors: Errors{"a": "second"}})

	all := ring.all()
	if len(all) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(all))
	}
	if all[0].Errors["a"] != "first" || all[1].Errors["a"] != "second" {
		t.Errorf("expected oldest first, got %v", all)
	}
}

func TestRejectionRing_EvictsOldestWhenFull(t *testing.T) {
	ring := newRejectionRing(2)

	ring.push(Rejection{Errors: Errors{"a": "first"}})
	ring.push(Rejection{Errors: Errors{"a": "second"}})
	ring.push(Rejection{Errors: Errors{"a": "third"}})

	all := ring.all()
	if len(all) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(all))
	}
	if all[0].Errors["a"] != "second" || all[1].Errors["a"] != "third" {
		t.Errorf("expected the oldest evicted, got %v", all)
	}
}

func TestRejectionRing_Last(t *testing.T) {
	ring := newRejectionRing(2)

	if _, ok := ring.last(); ok {
		t.Error("expected no rejection in empty ring")
	}

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ring.push(Rejection{At: at, Errors: Errors{"a": "msg"}})

	rej, ok := ring.last()
	if !ok {
		t.Fatal("expected a rejection")
	}
	if !rej.At.Equal(at) {
		t.Errorf("expected timestamp %v, got %v", at, rej.At)
	}
}

func TestRejectionRing_Clear(t *testing.T) {
	ring := newRejectionRing(2)

	ring.push(Rejection{Errors: Errors{"a": "msg"}})
	ring.clear()

	if got := ring.all(); got != nil {
		t.Errorf("expected nil after clear, got %v", got)
	}
	if _, ok := ring.last(); ok {
		t.Error("expected no rejection after clear")
	}
}

func TestRejectionRing_DisabledIsNil(t *testing.T) {
	ring := newRejectionRing(0)

	if ring != nil {
		t.Fatal("expected nil ring for size 0")
	}

	// Nil receivers are safe no-ops.
	ring.push(Rejection{})
	ring.clear()
	if got := ring.all(); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
