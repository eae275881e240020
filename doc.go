// Package formz provides a reactive form-state engine.
//
// The core type is Form, which maintains live, observable containers for
// field values, per-field errors, and touched flags, derives aggregate
// flags (overall validity, modification, in-flight validation and
// submission) from them, and sequences validation and submit pipelines
// over a pluggable validator.
//
// # Containers
//
// Store is a minimal observable value holder: get, set, update, and
// subscribe with immediate replay. Derived nodes recompute pure functions
// of one or more containers on every source change and expose only the
// read side:
//
//	count := formz.NewStore(0)
//	double := formz.Derive(count, func(n int) int { return n * 2 })
//	cancel := double.Subscribe(func(n int) { fmt.Println(n) })
//	count.Set(21) // subscriber sees 42
//	cancel()
//
// A Form wires eight containers into one graph: values, errors, touched,
// isSubmitting, isValidating, plus derived modified, isValid, isModified,
// and an aggregate Snapshot. Writes made by one controller operation
// settle before derived subscribers are notified, so observers never see
// validity computed from half of an update.
//
// # Validation
//
// Two validator shapes are supported and normalized internally. A custom
// function receives the values in scope and returns messages for failing
// fields:
//
//	cfg.Validate = func(values formz.Values) formz.Errors {
//	    if values["email"] == "invalid.email" {
//	        return formz.Errors{"email": "this email is invalid"}
//	    }
//	    return nil
//	}
//
// A Schema validates declaratively, built on go-playground/validator tag
// expressions, and collects every violation instead of stopping at the
// first:
//
//	cfg.Schema = formz.CompileRules(formz.Rules{
//	    "email":                "required,email",
//	    "password":             "required,min=8",
//	    "passwordConfirmation": "eqfield=password",
//	})
//
// Rules documents can also be loaded from YAML or JSON via ParseRules.
// When both shapes are configured the custom function takes precedence.
//
// # Submit
//
// HandleSubmit marks the form submitting, validates the whole form, and
// on success clears all errors and invokes the configured submit handler.
// On rejection the per-field messages land in the errors container and
// the handler is not invoked. isSubmitting is restored on every path:
//
//	form := formz.New(formz.Config{
//	    InitialValues: formz.Values{"email": ""},
//	    Schema:        schema,
//	    OnSubmit: func(ctx context.Context, values formz.Values, _ *formz.Store[formz.Values], _ *formz.Store[formz.Errors]) error {
//	        return api.Register(ctx, values)
//	    },
//	})
//
//	_ = form.HandleChange(ctx, formz.ChangeEvent{Name: "email", Value: "a@b.com"})
//	if err := form.HandleSubmit(ctx); err != nil {
//	    log.Printf("submit fault: %v", err)
//	}
//
// Expected validation failures are always resolved into the errors
// container as data; only unstructured validator faults and submit
// handler errors propagate as error returns.
//
// # Concurrency
//
// A Form is single-threaded and cooperative: container reads and writes
// are synchronous, and the caller is responsible for not interleaving
// operations on one instance from concurrent call sites. Overlapping
// validations race to write the errors container; disable submission
// while IsSubmitting or IsValidating reads true.
package formz
