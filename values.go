package formz

// Value is a single form field value. The value alphabet is deliberately
// small: text inputs store strings, checkboxes store bools, and nil marks
// a field that holds no value yet. All three are comparable, so structural
// copies and equality need no serialization machinery.
type Value = any

// Values maps field names to their current values. The set of keys is
// fixed when the form is constructed and never grows or shrinks afterward.
type Values map[string]Value

// Errors maps field names to validation messages. The empty string means
// the field has no error; every field key is always present.
type Errors map[string]string

// Flags maps field names to boolean markers such as touched state.
type Flags map[string]bool

// Clone returns a structural copy. The value alphabet contains no
// references, so a per-key copy is a deep copy.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Clone returns a copy of the errors map.
func (e Errors) Clone() Errors {
	if e == nil {
		return Errors{}
	}
	out := make(Errors, len(e))
	for k, msg := range e {
		out[k] = msg
	}
	return out
}

// Clone returns a copy of the flags map.
func (f Flags) Clone() Flags {
	if f == nil {
		return Flags{}
	}
	out := make(Flags, len(f))
	for k, b := range f {
		out[k] = b
	}
	return out
}

// absent reports whether an incoming value represents "no value": nil, or
// the empty string an unset input produces. A deliberate false is a value
// and is never absent.
func absent(v Value) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// equalValue reports whether two field values are equal. Valid only for
// the field value alphabet (string, bool, nil).
func equalValue(a, b Value) bool {
	return a == b
}

// emptyErrors returns an errors map with an empty message for every field.
func emptyErrors(v Values) Errors {
	out := make(Errors, len(v))
	for k := range v {
		out[k] = ""
	}
	return out
}

// emptyFlags returns a flags map with false for every field.
func emptyFlags(v Values) Flags {
	out := make(Flags, len(v))
	for k := range v {
		out[k] = false
	}
	return out
}

// modifiedFlags reports, per field of the initial snapshot, whether the
// current value differs from the initial one.
func modifiedFlags(current, initial Values) Flags {
	out := make(Flags, len(initial))
	for k, iv := range initial {
		out[k] = !equalValue(current[k], iv)
	}
	return out
}

// allTrue reports whether every flag in the map is set. Vacuously true for
// an empty map.
func allTrue(f Flags) bool {
	for _, b := range f {
		if !b {
			return false
		}
	}
	return true
}

// anyTrue reports whether at least one flag in the map is set.
func anyTrue(f Flags) bool {
	for _, b := range f {
		if b {
			return true
		}
	}
	return false
}

// noErrors reports whether every error message in the map is empty.
func noErrors(e Errors) bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}
