package formz

import "testing"

func TestPhase_String(t *testing.T) {
	cases := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseValidating, "validating"},
		{PhaseSubmitting, "submitting"},
		{Phase(99), "unknown"},
	}

	for _, tc := range cases {
		if got := tc.phase.String(); got != tc.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tc.phase, got, tc.want)
		}
	}
}

func TestPhaseOf(t *testing.T) {
	cases := []struct {
		validating bool
		submitting bool
		want       Phase
	}{
		{false, false, PhaseIdle},
		{false, true, PhaseSubmitting},
		{true, false, PhaseValidating},
		{true, true, PhaseValidating},
	}

	for _, tc := range cases {
		if got := phaseOf(tc.validating, tc.submitting); got != tc.want {
			t.Errorf("phaseOf(%v, %v) = %v, want %v", tc.validating, tc.submitting, got, tc.want)
		}
	}
}
