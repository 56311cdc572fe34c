package models

import (
	"errors"
	"fmt"
)

// ErrUnknownType reports a response-type tag or entity name that is not
// registered.
var ErrUnknownType = errors.New("unknown response type")

// CoercionError reports a wire value that cannot be converted to the
// declared shape of a field or payload.
type CoercionError struct {
	Type  string // entity or tag being hydrated
	Field string // local field name, empty for whole-payload mismatches
	Value any
	Err   error
}

func (e *CoercionError) Error() string {
	where := e.Type
	if e.Field != "" {
		where = e.Type + "." + e.Field
	}
	return fmt.Sprintf("cannot coerce %s from %T: %v", where, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
