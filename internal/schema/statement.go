package schema

import "fmt"

// Statement pairs SQL text with its declared parameter arity so that a
// parameter-count mismatch is caught when the statement is bound, not when
// the database rejects it mid-file.
type Statement struct {
	Name  string
	SQL   string
	Arity int
}

// Check validates the argument count against the declared arity.
func (s Statement) Check(args []any) error {
	if len(args) != s.Arity {
		return fmt.Errorf("statement %s: got %d args, want %d", s.Name, len(args), s.Arity)
	}
	return nil
}
