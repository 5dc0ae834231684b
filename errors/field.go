package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name to err, so that validation of a message or
// model can report which attribute is wrong. A nil err gives nil.
//
// Field names follow Go naming, nested fields use a dot path such as
// "Amount.Ticker". The description may be a format string.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	// The innermost wrap records the stack trace once.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds the field error to the collected errors. Both may be
// nil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error { return e.parent }

func (e *fieldError) Field() string { return e.field }

type fielder interface {
	Field() string
}

// FieldErrors collects every error reported for fieldName, walking both
// wrapped and grouped errors.
func FieldErrors(err error, fieldName string) []error {
	var res []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			return append(res, err)
		}
		switch e := err.(type) {
		case unpacker:
			for _, child := range e.Unpack() {
				res = append(res, FieldErrors(child, fieldName)...)
			}
			return res
		case causer:
			err = e.Cause()
		default:
			return res
		}
	}
	return res
}
