package transaction

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no transaction with the requested id exists.
var ErrNotFound = errors.New("transaction not found")

// MalformedRowError reports a stored CSV row that could not be parsed.
// Loading aborts on the first malformed row: every mutation rewrites the
// whole file from the parsed rows, so skipping a bad row would silently
// drop it on the next write. The row is the user's to fix.
type MalformedRowError struct {
	Row int // 1-based row number in the file, header included
	Err error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row %d: %v", e.Row, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// ValidationError reports a missing or invalid field on create or update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
