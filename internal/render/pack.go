package render

import "fmt"

// MissingParamError is raised by Pack when mapping lacks a value for a
// name the compiled SQL references.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("render: missing value for parameter %q", e.Name)
}

// Pack adapts named parameters to the positional protocol a
// database/sql driver expects. It walks r.VarNames in order and looks
// each up in mapping; for a Positional dialect, VarNames repeats a
// name once per occurrence in the emitted SQL, so the returned slice
// duplicates that name's value the same number of times.
func Pack(r *Result, mapping map[string]any) ([]any, error) {
	values := make([]any, len(r.VarNames))
	for i, name := range r.VarNames {
		v, ok := mapping[name]
		if !ok {
			return nil, &MissingParamError{Name: name}
		}
		values[i] = v
	}
	return values, nil
}
