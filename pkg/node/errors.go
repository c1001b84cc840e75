package node

import "fmt"

// DuplicateLabelError is raised when two items in a Select, Define, With,
// Bind, Group, or Partition key list share a label.
type DuplicateLabelError struct {
	Label string
	Path  []string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label %q in %v", e.Label, e.Path)
}

// InvalidArityError is raised when a known aggregate or scalar function is
// called with a number of arguments outside its declared arity range.
type InvalidArityError struct {
	Name     string
	Got      int
	Min, Max int
}

func (e *InvalidArityError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("%s: got %d argument(s), want at least %d", e.Name, e.Got, e.Min)
	}
	if e.Min == e.Max {
		return fmt.Sprintf("%s: got %d argument(s), want %d", e.Name, e.Got, e.Min)
	}
	return fmt.Sprintf("%s: got %d argument(s), want between %d and %d", e.Name, e.Got, e.Min, e.Max)
}
