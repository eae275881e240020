package formz

// ChangeEvent carries the element-shaped payload handed to HandleChange.
// It mirrors the subset of an input element the form engine cares about:
// an identifier, a string value, and for checkboxes a checked state.
type ChangeEvent struct {
	// Name identifies the field. When empty, ID is used instead.
	Name string

	// ID is the fallback field identifier.
	ID string

	// Value is the element's string value.
	Value string

	// Checkbox marks the element as checkbox-typed.
	Checkbox bool

	// Checked is the checkbox state, meaningful only when Checkbox is set.
	Checked bool
}

// field extracts the (name, value) pair to store in the values map.
// Checkbox elements yield their checked boolean, everything else yields
// its string value.
func (e ChangeEvent) field() (string, Value) {
	name := e.Name
	if name == "" {
		name = e.ID
	}
	if e.Checkbox {
		return name, e.Checked
	}
	return name, e.Value
}
