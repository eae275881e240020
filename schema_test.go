package formz

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRuleSchema_ValidateField_RequiredEmail(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{"email": "required,email"})

	err := schema.ValidateField(ctx, "email", Values{"email": "not-an-email"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(verr.Violations))
	}
	if verr.Violations[0].Field != "email" {
		t.Errorf("expected violation on email, got %s", verr.Violations[0].Field)
	}

	if err := schema.ValidateField(ctx, "email", Values{"email": "a@b.com"}); err != nil {
		t.Errorf("expected valid address to pass, got %v", err)
	}
}

func TestRuleSchema_ValidateField_MissingValueFailsRequired(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{"name": "required"})

	err := schema.ValidateField(ctx, "name", Values{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestRuleSchema_ValidateField_NoRulesPasses(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{"email": "required"})

	if err := schema.ValidateField(ctx, "nickname", Values{"nickname": ""}); err != nil {
		t.Errorf("expected field without rules to pass, got %v", err)
	}
}

func TestRuleSchema_ValidateForm_CollectsAllViolations(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{
		"name":    "required",
		"email":   "required",
		"country": "required",
	})

	err := schema.ValidateForm(ctx, Values{"name": "", "email": "", "country": ""})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 3 {
		t.Errorf("expected 3 violations, got %d: %v", len(verr.Violations), verr.Violations)
	}
}

func TestRuleSchema_EqFieldCrossField(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{"passwordConfirmation": "eqfield=password"})

	err := schema.ValidateForm(ctx, Values{"password": "a", "passwordConfirmation": "b"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(verr.Violations))
	}
	if verr.Violations[0].Field != "passwordConfirmation" {
		t.Errorf("expected violation on passwordConfirmation, got %s", verr.Violations[0].Field)
	}
	if !strings.Contains(verr.Violations[0].Message, "password") {
		t.Errorf("expected message to name the referenced field, got %q", verr.Violations[0].Message)
	}

	if err := schema.ValidateForm(ctx, Values{"password": "a", "passwordConfirmation": "a"}); err != nil {
		t.Errorf("expected matching values to pass, got %v", err)
	}
}

func TestRuleSchema_RequiredIfCrossField(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{"what": "required_if=wantsSomething true"})

	err := schema.ValidateForm(ctx, Values{"wantsSomething": true, "what": ""})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "what" {
		t.Errorf("expected exactly one violation on what, got %v", verr.Violations)
	}

	if err := schema.ValidateForm(ctx, Values{"wantsSomething": false, "what": ""}); err != nil {
		t.Errorf("expected no violations when condition is off, got %v", err)
	}

	if err := schema.ValidateForm(ctx, Values{"wantsSomething": true, "what": "a pony"}); err != nil {
		t.Errorf("expected filled field to pass, got %v", err)
	}
}

func TestRuleSchema_SingleFieldSeesOtherFields(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{"passwordConfirmation": "eqfield=password"})

	// Single-field validation consults the full live values map.
	err := schema.ValidateField(ctx, "passwordConfirmation", Values{
		"password":             "hunter2",
		"passwordConfirmation": "hunter3",
	})
	if err == nil {
		t.Fatal("expected cross-field mismatch to fail")
	}

	err = schema.ValidateField(ctx, "passwordConfirmation", Values{
		"password":             "hunter2",
		"passwordConfirmation": "hunter2",
	})
	if err != nil {
		t.Errorf("expected match to pass, got %v", err)
	}
}

func TestRuleSchema_OmitemptyChainShortCircuits(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{"website": "omitempty,url"})

	if err := schema.ValidateField(ctx, "website", Values{"website": ""}); err != nil {
		t.Errorf("expected empty optional field to pass, got %v", err)
	}

	if err := schema.ValidateField(ctx, "website", Values{"website": "not a url"}); err == nil {
		t.Error("expected invalid URL to fail")
	}
}

func TestRuleSchema_MinLength(t *testing.T) {
	ctx := context.Background()
	schema := CompileRules(Rules{"password": "required,min=8"})

	err := schema.ValidateField(ctx, "password", Values{"password": "short"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Violations[0].Message, "8") {
		t.Errorf("expected message to carry the parameter, got %q", verr.Violations[0].Message)
	}
}

func TestValidationError_ErrorListsAllViolations(t *testing.T) {
	err := &ValidationError{Violations: []Violation{
		{Field: "name", Message: "name is a required field"},
		{Field: "email", Message: "email must be a valid email address"},
	}}

	msg := err.Error()

	if !strings.Contains(msg, "name is a required field") {
		t.Errorf("expected first violation in message, got %q", msg)
	}
	if !strings.Contains(msg, "email must be a valid email address") {
		t.Errorf("expected second violation in message, got %q", msg)
	}
}

func TestMessage_KnownTags(t *testing.T) {
	cases := []struct {
		tag   string
		param string
		want  string
	}{
		{"required", "", "email is a required field"},
		{"email", "", "email must be a valid email address"},
		{"eqfield", "password", "email must match password"},
		{"min", "8", "email must be at least 8"},
		{"oneof", "a b", "email must be one of: a b"},
	}

	for _, tc := range cases {
		if got := message("email", tc.tag, tc.param); got != tc.want {
			t.Errorf("message(email, %s, %s) = %q, want %q", tc.tag, tc.param, got, tc.want)
		}
	}
}
