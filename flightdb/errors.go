package flightdb

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to classify a returned error.
var (
	ErrConnection = errors.New("data source unreachable")
	ErrQuery      = errors.New("query failed")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid parameter")
)

// Error carries the operation, the report or parameter that failed, and the cause.
type Error struct {
	Op   string // e.g. "flightdb.Conn.Query"
	Ref  string // report ref, city or query snippet; may be empty
	Kind error  // one of the Err* kinds above
	Err  error  // underlying cause; may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Ref != "" {
		msg += fmt.Sprintf(" (%s)", e.Ref)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Errorf builds an *Error whose cause is formatted from format and args.
func Errorf(op string, kind error, ref string, format string, args ...any) *Error {
	return &Error{Op: op, Ref: ref, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// snippet shortens a SQL string for use as an error ref.
func snippet(query string) string {
	const limit = 60
	q := []rune(collapseSpace(query))
	if len(q) <= limit {
		return string(q)
	}
	return string(q[:limit]) + "..."
}
