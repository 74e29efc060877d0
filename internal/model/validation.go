package model

// constraint is one rule of a declarative validation table. The check
// returns a violation message, or "" when the payload satisfies the rule.
type constraint[T any] struct {
	field string
	check func(T) string
}

// checkConstraints evaluates the whole table and collects every violation,
// so callers can report all of them at once.
func checkConstraints[T any](payload T, table []constraint[T]) []FieldError {
	var violations []FieldError
	for _, c := range table {
		if msg := c.check(payload); msg != "" {
			violations = append(violations, FieldError{Field: c.field, Message: msg})
		}
	}
	return violations
}
