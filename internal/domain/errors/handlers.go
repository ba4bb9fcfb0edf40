package errors

import "coderr/internal/errors"

// FieldsOf returns the field-scoped problems carried anywhere in err's chain.
func FieldsOf(err error) FieldErrors {
	var scoped FieldScoped
	if errors.As(err, &scoped) {
		return scoped.Fields()
	}

	return nil
}

// Validation starts an empty field-scoped validation error collector.
func Validation() *FieldCollector {
	return &FieldCollector{fields: FieldErrors{}}
}

// FieldCollector accumulates field problems before turning them into ErrValidationFailed.
type FieldCollector struct {
	fields FieldErrors
}

// Add records a problem for field.
func (c *FieldCollector) Add(field, message string) {
	c.fields[field] = append(c.fields[field], message)
}

// Check records message for field when ok is false.
func (c *FieldCollector) Check(ok bool, field, message string) {
	if !ok {
		c.Add(field, message)
	}
}

// Err returns nil when nothing was recorded.
func (c *FieldCollector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}

	return ErrValidationFailed.WithFields(c.fields)
}
