package formz

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key form events.
type MetricsProvider interface {
	// OnFieldChange is called when a field value is written through the
	// controller.
	OnFieldChange(field string)

	// OnValidationSuccess is called when a validation run passes.
	// Scope is "field" or "form".
	OnValidationSuccess(scope string, duration time.Duration)

	// OnValidationFailure is called when a validation run rejects fields.
	// Violations is the number of fields rejected.
	OnValidationFailure(scope string, violations int, duration time.Duration)

	// OnSubmitAccepted is called when a submit passes validation and the
	// submit handler has returned. Duration covers the whole pipeline.
	OnSubmitAccepted(duration time.Duration)

	// OnSubmitRejected is called when a submit is blocked by validation.
	OnSubmitRejected(violations int, duration time.Duration)

	// OnReset is called when the form is restored to its initial snapshot.
	OnReset()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnFieldChange(_ string)                                {}
func (NoOpMetricsProvider) OnValidationSuccess(_ string, _ time.Duration)         {}
func (NoOpMetricsProvider) OnValidationFailure(_ string, _ int, _ time.Duration)  {}
func (NoOpMetricsProvider) OnSubmitAccepted(_ time.Duration)                      {}
func (NoOpMetricsProvider) OnSubmitRejected(_ int, _ time.Duration)               {}
func (NoOpMetricsProvider) OnReset()                                              {}
