package formz

// Snapshot is the aggregate read-only view of a form: every container and
// derived flag in one value, for consumers that want one subscription
// instead of eight. It is recomputed from its sources and never mutated
// independently.
type Snapshot struct {
	Values       Values
	Errors       Errors
	Touched      Flags
	Modified     Flags
	IsValid      bool
	IsValidating bool
	IsSubmitting bool
	IsModified   bool
}

// Phase summarizes the submit state machine of a form.
type Phase int

const (
	// PhaseIdle indicates no validation or submission is in flight.
	PhaseIdle Phase = iota

	// PhaseValidating indicates a validator invocation is in progress,
	// either for a single field or for the whole form during submit.
	PhaseValidating

	// PhaseSubmitting indicates a submit pipeline is in flight outside
	// of its validation step.
	PhaseSubmitting
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// phaseOf derives the phase from the in-flight flags. Validation wins over
// submission because submit enters its validating step while isSubmitting
// is already set.
func phaseOf(validating, submitting bool) Phase {
	switch {
	case validating:
		return PhaseValidating
	case submitting:
		return PhaseSubmitting
	default:
		return PhaseIdle
	}
}
