package errors

import (
	"errors"
	"fmt"
)

// NotFoundError reports that no record carries the requested identifier.
type NotFoundError struct {
	Table string
	ID    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with id %d", e.Table, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given table and id.
func NewNotFoundError(table string, id int64) *NotFoundError {
	return &NotFoundError{Table: table, ID: id}
}

// IsNotFoundError reports whether err is a NotFoundError (even when wrapped).
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
