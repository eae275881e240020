package formz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance backing rule schemas.
var validate = validator.New()

// Violation names one field that failed validation and why.
type Violation struct {
	Field   string
	Message string
}

// ValidationError is the structured rejection a Schema raises. It lists
// every violation found in the validated scope, so a whole-form run never
// stops at the first failure.
type ValidationError struct {
	Violations []Violation
}

// Error renders all violations as a single message.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Schema validates form values.
//
// ValidateForm checks every field and collects all violations.
// ValidateField checks one named field against the full current values
// map, so rules may consult other fields (cross-field rules).
//
// Both return nil on success and a *ValidationError on rejection. Any
// other error is an unstructured fault the caller must treat as an
// invocation error rather than a validation result.
type Schema interface {
	ValidateForm(ctx context.Context, values Values) error
	ValidateField(ctx context.Context, name string, values Values) error
}

// Rules maps a field name to a go-playground/validator tag expression,
// for example "required,email" or "min=3".
//
// Two cross-field forms are resolved against the live values map instead
// of a struct:
//
//	eqfield=other            the field must equal field "other"
//	required_if=other value  the field is required when field "other"
//	                         currently holds "value" ("true"/"false" for
//	                         checkbox fields)
type Rules map[string]string

// CompileRules builds a Schema from declarative rules. Fields without a
// rule entry are never validated. Rule tags must be valid
// go-playground/validator tags; an unknown tag surfaces as an unstructured
// fault at validation time.
func CompileRules(rules Rules) Schema {
	return &ruleSchema{rules: rules}
}

type ruleSchema struct {
	rules Rules
}

func (s *ruleSchema) ValidateForm(ctx context.Context, values Values) error {
	names := make([]string, 0, len(s.rules))
	for name := range s.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var violations []Violation
	for _, name := range names {
		found, err := s.checkField(ctx, name, values)
		if err != nil {
			return err
		}
		violations = append(violations, found...)
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func (s *ruleSchema) ValidateField(ctx context.Context, name string, values Values) error {
	if _, ok := s.rules[name]; !ok {
		return nil
	}
	violations, err := s.checkField(ctx, name, values)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// checkField evaluates one field's rule expression. Cross-field rules are
// resolved here against the values map; everything else is handed to the
// validator in one expression so chains like "omitempty,email" keep their
// short-circuit semantics.
func (s *ruleSchema) checkField(ctx context.Context, name string, values Values) ([]Violation, error) {
	value := values[name]

	var plain []string
	var violations []Violation

	for _, rule := range strings.Split(s.rules[name], ",") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		tag, param, _ := strings.Cut(rule, "=")

		switch tag {
		case "eqfield", "nefield":
			err := validate.VarWithValueCtx(ctx, value, values[param], tag)
			if err == nil {
				continue
			}
			found, fault := violationsOf(name, rule, err)
			if fault != nil {
				return nil, fault
			}
			violations = append(violations, found...)

		case "required_if":
			other, want, _ := strings.Cut(param, " ")
			if !valueMatches(values[other], want) {
				continue
			}
			err := validate.VarCtx(ctx, value, "required")
			if err == nil {
				continue
			}
			found, fault := violationsOf(name, rule, err)
			if fault != nil {
				return nil, fault
			}
			violations = append(violations, found...)

		default:
			plain = append(plain, rule)
		}
	}

	if len(plain) > 0 {
		if err := validate.VarCtx(ctx, value, strings.Join(plain, ",")); err != nil {
			found, fault := violationsOf(name, "", err)
			if fault != nil {
				return nil, fault
			}
			violations = append(violations, found...)
		}
	}

	return violations, nil
}

// violationsOf converts a validator error into violations for the named
// field, or passes through unstructured faults.
func violationsOf(name, rule string, err error) ([]Violation, error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		if rule != "" {
			return nil, fmt.Errorf("rule %q on field %q: %w", rule, name, err)
		}
		return nil, fmt.Errorf("field %q: %w", name, err)
	}

	out := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		tag, param := fe.Tag(), fe.Param()
		if rule != "" {
			// Cross-field rules carry the field reference in the rule
			// itself; the validator only saw the two values.
			var cut bool
			tag, param, cut = strings.Cut(rule, "=")
			if !cut {
				param = ""
			}
		}
		out = append(out, Violation{Field: name, Message: message(name, tag, param)})
	}
	return out, nil
}

// message renders a human-readable description for a failed rule.
func message(field, tag, param string) string {
	switch tag {
	case "required", "required_if":
		return field + " is a required field"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "eqfield":
		return field + " must match " + param
	case "nefield":
		return field + " must not match " + param
	case "min":
		return field + " must be at least " + param
	case "max":
		return field + " must be at most " + param
	case "len":
		return field + " must be exactly " + param + " characters"
	case "oneof":
		return field + " must be one of: " + param
	default:
		if param != "" {
			return field + " failed " + tag + "=" + param + " validation"
		}
		return field + " failed " + tag + " validation"
	}
}

// valueMatches compares a field value against a rule parameter given as a
// string. Booleans compare against "true"/"false"; nil matches nothing.
func valueMatches(v Value, want string) bool {
	switch tv := v.(type) {
	case string:
		return tv == want
	case bool:
		return strconv.FormatBool(tv) == want
	default:
		return false
	}
}
