package formz

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// ErrNoSubmitHandler is returned by HandleSubmit when validation passes
// but no submit handler was configured.
var ErrNoSubmitHandler = errors.New("formz: no submit handler configured")

// ErrNoFieldName is returned by HandleChange when the event names no field.
var ErrNoFieldName = errors.New("formz: change event has no field name")

// ValidateFunc is the custom validator shape. It receives the values in
// scope — the full map for whole-form validation, a one-key map for a
// single-field call — and returns a message per failing field. A nil or
// empty result means everything in scope passed.
type ValidateFunc func(values Values) Errors

// SubmitFunc handles an accepted submit. It receives the validated values
// snapshot together with the live values and errors containers.
type SubmitFunc func(ctx context.Context, values Values, form *Store[Values], errs *Store[Errors]) error

// Config describes a form instance. All fields after InitialValues are
// optional.
type Config struct {
	// InitialValues fixes the form's field universe: the keys present
	// here are the form's fields for its entire lifetime. Must be
	// non-empty; an empty map is diagnosed and yields an effectively
	// empty form.
	InitialValues Values

	// Schema optionally validates fields declaratively. See CompileRules
	// and ParseRules.
	Schema Schema

	// Validate optionally validates fields with a custom function. When
	// both Validate and Schema are set, Validate takes precedence and
	// the Schema is never consulted.
	Validate ValidateFunc

	// OnSubmit handles an accepted submit.
	OnSubmit SubmitFunc
}

// Form maintains the live, observable state of one form instance: current
// values, per-field errors and touched flags, and derived aggregates. All
// containers mutate in place for the instance's lifetime; there is no
// teardown.
//
// A Form is single-threaded: callers must not interleave operations on the
// same instance from concurrent call sites. There is no internal locking
// across operations, and overlapping validations race to write the errors
// container (last write wins). Disable submission while IsSubmitting or
// IsValidating reads true.
type Form struct {
	validator    fieldValidator
	hasValidator bool
	onSubmit     SubmitFunc
	clock        clockz.Clock
	metrics      MetricsProvider
	history      *rejectionRing
	sched        *scheduler

	initial *Store[Values]
	values  *Store[Values]
	errs    *Store[Errors]
	touched *Store[Flags]

	isSubmitting *Store[bool]
	isValidating *Store[bool]

	modified   Readable[Flags]
	isValid    Readable[bool]
	isModified Readable[bool]
	phase      Readable[Phase]
	state      Readable[Snapshot]
}

// New creates a Form from the given configuration. The initial values are
// deep-copied into the stored snapshot, so later mutation of the live
// values map can never corrupt the restore point.
func New(cfg Config) *Form {
	if len(cfg.InitialValues) == 0 {
		capitan.Emit(context.Background(), FormEmptyInitialValues,
			KeyFieldCount.Field(0),
		)
	}

	initial := cfg.InitialValues.Clone()

	f := &Form{
		onSubmit: cfg.OnSubmit,
		clock:    clockz.RealClock,
		sched:    &scheduler{},
	}
	f.validator, f.hasValidator = resolveValidator(cfg)

	f.initial = NewStore(initial)
	f.values = NewStore(initial.Clone())
	f.errs = NewStore(emptyErrors(initial))
	f.touched = NewStore(emptyFlags(initial))
	f.isSubmitting = NewStore(false)
	f.isValidating = NewStore(false)

	f.modified = deriveFrom(f.sched, func() Flags {
		return modifiedFlags(f.values.Get(), f.initial.Get())
	}, sourceOf[Values](f.values), sourceOf[Values](f.initial))

	f.isValid = deriveFrom(f.sched, func() bool {
		return allTrue(f.touched.Get()) && noErrors(f.errs.Get())
	}, sourceOf[Errors](f.errs), sourceOf[Flags](f.touched))

	f.isModified = deriveFrom(f.sched, func() bool {
		return anyTrue(f.modified.Get())
	}, sourceOf[Flags](f.modified))

	f.phase = deriveFrom(f.sched, func() Phase {
		return phaseOf(f.isValidating.Get(), f.isSubmitting.Get())
	}, sourceOf[bool](f.isValidating), sourceOf[bool](f.isSubmitting))

	f.state = deriveFrom(f.sched, func() Snapshot {
		return Snapshot{
			Values:       f.values.Get(),
			Errors:       f.errs.Get(),
			Touched:      f.touched.Get(),
			Modified:     f.modified.Get(),
			IsValid:      f.isValid.Get(),
			IsValidating: f.isValidating.Get(),
			IsSubmitting: f.isSubmitting.Get(),
			IsModified:   f.isModified.Get(),
		}
	},
		sourceOf[Values](f.values),
		sourceOf[Errors](f.errs),
		sourceOf[Flags](f.touched),
		sourceOf[Flags](f.modified),
		sourceOf[bool](f.isValid),
		sourceOf[bool](f.isValidating),
		sourceOf[bool](f.isSubmitting),
		sourceOf[bool](f.isModified),
	)

	return f
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic timing in tests.
// Must be called before the form is used.
func (f *Form) Clock(clock clockz.Clock) *Form {
	f.clock = clock
	return f
}

// Metrics sets a metrics provider for observability integration. The
// provider receives callbacks on field changes, validation outcomes,
// submits, and resets. Must be called before the form is used.
func (f *Form) Metrics(provider MetricsProvider) *Form {
	f.metrics = provider
	return f
}

// RejectionHistorySize sets the number of recent blocked submits to
// retain. Use 0 (default) to disable history. Must be called before the
// form is used.
func (f *Form) RejectionHistorySize(n int) *Form {
	f.history = newRejectionRing(n)
	return f
}

// -----------------------------------------------------------------------------
// Observable Surface
// -----------------------------------------------------------------------------

// Values returns the live values container. Writing it directly bypasses
// touch tracking and validation; the safer path is the Update* operations.
func (f *Form) Values() *Store[Values] { return f.values }

// Errors returns the live errors container. Writing it directly bypasses
// validation sequencing.
func (f *Form) Errors() *Store[Errors] { return f.errs }

// Touched returns the live touched-flags container.
func (f *Form) Touched() *Store[Flags] { return f.touched }

// IsSubmitting returns the submit-in-flight flag container.
func (f *Form) IsSubmitting() *Store[bool] { return f.isSubmitting }

// IsValidating returns the validation-in-flight flag container.
func (f *Form) IsValidating() *Store[bool] { return f.isValidating }

// Modified returns the derived per-field modification flags: true for a
// field whose current value differs from its initial value.
func (f *Form) Modified() Readable[Flags] { return f.modified }

// IsValid returns the derived overall validity: true iff every field is
// touched and every error is empty. An untouched field makes the form
// invalid even if no validator would reject it.
func (f *Form) IsValid() Readable[bool] { return f.isValid }

// IsModified returns the derived overall modification flag: true iff at
// least one field is modified.
func (f *Form) IsModified() Readable[bool] { return f.isModified }

// Phase returns the derived submit-machine phase.
func (f *Form) Phase() Readable[Phase] { return f.phase }

// State returns the derived aggregate snapshot.
func (f *Form) State() Readable[Snapshot] { return f.state }

// LastRejection returns the most recent blocked submit, if rejection
// history is enabled.
func (f *Form) LastRejection() (Rejection, bool) {
	return f.history.last()
}

// RejectionHistory returns recent blocked submits, oldest first. Returns
// nil if history is not enabled (see RejectionHistorySize).
func (f *Form) RejectionHistory() []Rejection {
	return f.history.all()
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// UpdateField writes value into the values container at name. Absent
// values (nil, or the empty string an unset input produces) are skipped;
// a deliberate false is stored. No touch or validation side effects.
func (f *Form) UpdateField(ctx context.Context, name string, value Value) {
	if absent(value) {
		return
	}
	f.values.Update(func(vs Values) Values {
		out := vs.Clone()
		out[name] = value
		return out
	})
	capitan.Emit(ctx, FormFieldChanged,
		KeyField.Field(name),
	)
	if f.metrics != nil {
		f.metrics.OnFieldChange(name)
	}
}

// UpdateTouched writes flag into the touched container at name.
func (f *Form) UpdateTouched(name string, flag bool) {
	f.touched.Update(func(t Flags) Flags {
		out := t.Clone()
		out[name] = flag
		return out
	})
}

// UpdateValidateField writes the value, marks the field touched, then runs
// single-field validation and records the resulting error (or "" on
// success). This is the primitive behind every live field edit.
//
// A validator fault — anything other than a structured rejection — is
// returned to the caller; the field stays touched and its previous error
// value is left in place.
func (f *Form) UpdateValidateField(ctx context.Context, name string, value Value) error {
	var err error
	f.sched.batch(func() {
		f.UpdateField(ctx, name, value)
		err = f.touchAndValidate(ctx, name)
	})
	return err
}

// ValidateField marks the field touched and validates its current value
// without altering it.
func (f *Form) ValidateField(ctx context.Context, name string) error {
	var err error
	f.sched.batch(func() {
		err = f.touchAndValidate(ctx, name)
	})
	return err
}

// touchAndValidate is the shared touch → validate → record sequence. The
// value write (if any) is already committed when this runs, so cross-field
// rules always see the just-written value.
func (f *Form) touchAndValidate(ctx context.Context, name string) error {
	f.touched.Update(func(t Flags) Flags {
		out := t.Clone()
		out[name] = true
		return out
	})

	start := f.clock.Now()
	if f.hasValidator {
		f.isValidating.Set(true)
		capitan.Emit(ctx, ValidationStarted,
			KeyScope.Field(scopeField),
			KeyField.Field(name),
		)
	}
	msg, err := f.validator.validateField(ctx, name, f.values.Get())
	if f.hasValidator {
		f.isValidating.Set(false)
	}
	if err != nil {
		capitan.Emit(ctx, ValidationFaulted,
			KeyScope.Field(scopeField),
			KeyField.Field(name),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("validate field %q: %w", name, err)
	}

	f.errs.Update(func(e Errors) Errors {
		out := e.Clone()
		out[name] = msg
		return out
	})

	if msg == "" {
		capitan.Emit(ctx, ValidationSucceeded,
			KeyScope.Field(scopeField),
			KeyField.Field(name),
			KeyDuration.Field(f.clock.Since(start)),
		)
		if f.metrics != nil {
			f.metrics.OnValidationSuccess(scopeField, f.clock.Since(start))
		}
	} else {
		capitan.Emit(ctx, ValidationFailed,
			KeyScope.Field(scopeField),
			KeyField.Field(name),
			KeyError.Field(msg),
			KeyDuration.Field(f.clock.Since(start)),
		)
		if f.metrics != nil {
			f.metrics.OnValidationFailure(scopeField, 1, f.clock.Since(start))
		}
	}
	return nil
}

// HandleChange extracts the (field, value) pair from an input-element
// event and runs UpdateValidateField with it.
func (f *Form) HandleChange(ctx context.Context, ev ChangeEvent) error {
	name, value := ev.field()
	if name == "" {
		return ErrNoFieldName
	}
	return f.UpdateValidateField(ctx, name, value)
}

// HandleReset restores values, errors, and touched flags to the stored
// initial snapshot. The containers receive fresh copies, so further edits
// cannot corrupt the restore point.
func (f *Form) HandleReset(ctx context.Context) {
	var fieldCount int
	f.sched.batch(func() {
		initial := f.initial.Get()
		fieldCount = len(initial)
		f.values.Set(initial.Clone())
		f.errs.Set(emptyErrors(initial))
		f.touched.Set(emptyFlags(initial))
	})
	capitan.Emit(ctx, FormReset,
		KeyFieldCount.Field(fieldCount),
	)
	if f.metrics != nil {
		f.metrics.OnReset()
	}
}

// HandleSubmit runs the submit pipeline: mark submitting, validate the
// whole form, and on success clear all errors and invoke the submit
// handler. On rejection the per-field messages are recorded and the
// handler is not invoked. isSubmitting is restored to false on every
// path.
//
// A validator fault or a submit handler error is returned to the caller;
// a validation rejection is data, not an error.
func (f *Form) HandleSubmit(ctx context.Context) error {
	start := f.clock.Now()

	f.isSubmitting.Set(true)
	capitan.Emit(ctx, SubmitStarted)
	defer f.isSubmitting.Set(false)

	values := f.values.Get()

	var failed Errors
	if f.hasValidator {
		f.isValidating.Set(true)
		capitan.Emit(ctx, ValidationStarted,
			KeyScope.Field(scopeForm),
		)
		var err error
		failed, err = f.validator.validateForm(ctx, values, f.errs.Get())
		f.isValidating.Set(false)
		if err != nil {
			capitan.Emit(ctx, ValidationFaulted,
				KeyScope.Field(scopeForm),
				KeyError.Field(err.Error()),
			)
			return fmt.Errorf("submit validation: %w", err)
		}
	}

	if failed != nil {
		violations := 0
		for _, msg := range failed {
			if msg != "" {
				violations++
			}
		}
		f.errs.Set(failed.Clone())
		f.history.push(Rejection{At: f.clock.Now(), Errors: failed.Clone()})
		capitan.Emit(ctx, SubmitBlocked,
			KeyViolations.Field(violations),
			KeyDuration.Field(f.clock.Since(start)),
		)
		if f.metrics != nil {
			f.metrics.OnValidationFailure(scopeForm, violations, f.clock.Since(start))
			f.metrics.OnSubmitRejected(violations, f.clock.Since(start))
		}
		return nil
	}

	if f.hasValidator {
		if f.metrics != nil {
			f.metrics.OnValidationSuccess(scopeForm, f.clock.Since(start))
		}
		capitan.Emit(ctx, ValidationSucceeded,
			KeyScope.Field(scopeForm),
			KeyDuration.Field(f.clock.Since(start)),
		)
	}

	f.errs.Set(emptyErrors(values))
	f.history.clear()
	capitan.Emit(ctx, SubmitAccepted,
		KeyFieldCount.Field(len(values)),
	)

	if f.onSubmit == nil {
		return ErrNoSubmitHandler
	}
	if err := f.onSubmit(ctx, values.Clone(), f.values, f.errs); err != nil {
		return fmt.Errorf("submit handler: %w", err)
	}
	if f.metrics != nil {
		f.metrics.OnSubmitAccepted(f.clock.Since(start))
	}
	return nil
}

// UpdateInitialValues replaces the stored initial snapshot and immediately
// resets the form to it. An empty map is rejected with a diagnostic and
// leaves the form untouched.
func (f *Form) UpdateInitialValues(ctx context.Context, values Values) {
	if len(values) == 0 {
		capitan.Emit(ctx, FormEmptyInitialValues,
			KeyFieldCount.Field(0),
		)
		return
	}
	f.sched.batch(func() {
		f.initial.Set(values.Clone())
		f.HandleReset(ctx)
	})
	capitan.Emit(ctx, FormReinitialized,
		KeyFieldCount.Field(len(values)),
	)
}
