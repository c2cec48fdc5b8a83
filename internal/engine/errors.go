package engine

import (
	"errors"
	"fmt"
)

// ErrNoSelection is wrapped by a ValidationError when modify or delete is
// called without a record id.
var ErrNoSelection = errors.New("no record selected")

// ValidationError reports a candidate rejected before any store access.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConnectivityError reports that no store session could be opened. No work
// was done.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ImportRowError reports an import row whose data could not be used. Line is
// the row number in the source.
type ImportRowError struct {
	Line int
	Err  error
}

func (e *ImportRowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *ImportRowError) Unwrap() error { return e.Err }
