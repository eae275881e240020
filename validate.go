package formz

import (
	"context"
	"errors"
)

// fieldValidator is the single internal contract both validator shapes are
// adapted to. The lifecycle controller only ever calls this interface; it
// never branches on which validator kind is configured.
type fieldValidator interface {
	// validateField checks one named field against the current values and
	// returns its error message, or "" when the field passes. A non-nil
	// error is an unstructured validator fault.
	validateField(ctx context.Context, name string, values Values) (string, error)

	// validateForm checks every field. A nil result means the form
	// passed. A non-nil result is the complete errors map the caller
	// should install: adapters that only report violations overlay them
	// on prior, adapters that replace wholesale ignore prior.
	validateForm(ctx context.Context, values Values, prior Errors) (Errors, error)
}

// resolveValidator picks the validator variant once at construction. The
// custom function takes precedence over a schema; with neither configured
// validation trivially succeeds. The second return reports whether any
// validator is configured at all.
func resolveValidator(cfg Config) (fieldValidator, bool) {
	switch {
	case cfg.Validate != nil:
		return funcValidator{fn: cfg.Validate}, true
	case cfg.Schema != nil:
		return schemaValidator{schema: cfg.Schema}, true
	default:
		return noopValidator{}, false
	}
}

// noopValidator accepts everything.
type noopValidator struct{}

func (noopValidator) validateField(context.Context, string, Values) (string, error) {
	return "", nil
}

func (noopValidator) validateForm(context.Context, Values, Errors) (Errors, error) {
	return nil, nil
}

// funcValidator adapts the custom-function shape.
type funcValidator struct {
	fn ValidateFunc
}

func (v funcValidator) validateField(_ context.Context, name string, values Values) (string, error) {
	// A single-field call scopes the input to a one-key map. A response
	// missing the field's key exonerates it: the message defaults to "".
	result := v.fn(Values{name: values[name]})
	return result[name], nil
}

func (v funcValidator) validateForm(_ context.Context, values Values, _ Errors) (Errors, error) {
	result := v.fn(values.Clone())
	if len(result) == 0 {
		return nil, nil
	}
	// The returned map is installed verbatim; fields it does not mention
	// are not guaranteed an entry.
	return result.Clone(), nil
}

// schemaValidator adapts the Schema shape.
type schemaValidator struct {
	schema Schema
}

func (v schemaValidator) validateField(ctx context.Context, name string, values Values) (string, error) {
	err := v.schema.ValidateField(ctx, name, values)
	if err == nil {
		return "", nil
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return "", err
	}
	for _, viol := range verr.Violations {
		if viol.Field == name {
			return viol.Message, nil
		}
	}
	if len(verr.Violations) > 0 {
		return verr.Violations[0].Message, nil
	}
	return "", nil
}

func (v schemaValidator) validateForm(ctx context.Context, values Values, prior Errors) (Errors, error) {
	err := v.schema.ValidateForm(ctx, values)
	if err == nil {
		return nil, nil
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}
	// Each violation lands in its field's slot; fields not mentioned keep
	// their prior error value. Only a fully successful run clears errors.
	out := prior.Clone()
	seen := make(map[string]bool, len(verr.Violations))
	for _, viol := range verr.Violations {
		if seen[viol.Field] {
			continue
		}
		seen[viol.Field] = true
		out[viol.Field] = viol.Message
	}
	return out, nil
}
