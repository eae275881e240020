package formz

import "github.com/zoobzio/capitan"

// Form lifecycle signals.
var (
	// FormFieldChanged is emitted when a field value is written through
	// the controller.
	FormFieldChanged = capitan.NewSignal(
		"formz.field.changed",
		"Field value updated",
	)

	// FormReset is emitted when the form is restored to its initial
	// snapshot.
	FormReset = capitan.NewSignal(
		"formz.form.reset",
		"Form restored to initial snapshot",
	)

	// FormReinitialized is emitted when the initial snapshot is replaced
	// and the form reset to it.
	FormReinitialized = capitan.NewSignal(
		"formz.form.reinitialized",
		"Initial values replaced",
	)

	// FormEmptyInitialValues is emitted when construction or
	// re-initialization receives an empty initial-values map.
	FormEmptyInitialValues = capitan.NewSignal(
		"formz.config.empty_initial_values",
		"Empty initial-values map supplied",
	)
)

// Validation signals.
var (
	// ValidationStarted is emitted when a validator invocation begins.
	ValidationStarted = capitan.NewSignal(
		"formz.validation.started",
		"Validator invocation started",
	)

	// ValidationSucceeded is emitted when the validated scope passes.
	ValidationSucceeded = capitan.NewSignal(
		"formz.validation.succeeded",
		"Validated scope passed",
	)

	// ValidationFailed is emitted when the validator rejects one or more
	// fields.
	ValidationFailed = capitan.NewSignal(
		"formz.validation.failed",
		"Validator rejected one or more fields",
	)

	// ValidationFaulted is emitted when a validator raises an
	// unstructured error instead of a rejection.
	ValidationFaulted = capitan.NewSignal(
		"formz.validation.faulted",
		"Validator raised an unstructured error",
	)
)

// Submit signals.
var (
	// SubmitStarted is emitted when a submit pipeline begins.
	SubmitStarted = capitan.NewSignal(
		"formz.submit.started",
		"Submit pipeline started",
	)

	// SubmitAccepted is emitted when whole-form validation passes and the
	// submit handler is about to run.
	SubmitAccepted = capitan.NewSignal(
		"formz.submit.accepted",
		"Submit validated and handed to the submit handler",
	)

	// SubmitBlocked is emitted when whole-form validation rejects the
	// submit. The handler is not invoked.
	SubmitBlocked = capitan.NewSignal(
		"formz.submit.blocked",
		"Submit blocked by validation failures",
	)
)
