package formz

import "github.com/zoobzio/capitan"

// Field keys for form events.
var (
	// KeyField is the field name an event concerns.
	KeyField = capitan.NewStringKey("field")

	// KeyScope is the validation scope: "field" or "form".
	KeyScope = capitan.NewStringKey("scope")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyViolations is the number of fields a validation run rejected.
	KeyViolations = capitan.NewIntKey("violations")

	// KeyFieldCount is the number of fields in the form.
	KeyFieldCount = capitan.NewIntKey("field_count")

	// KeyDuration is the time a validation or submit took.
	KeyDuration = capitan.NewDurationKey("duration")
)

// Validation scope values for KeyScope.
const (
	scopeField = "field"
	scopeForm  = "form"
)
