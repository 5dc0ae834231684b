package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none of the provided errors is non-nil, nil is returned. If only one
// error is present, that error instance is returned as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a group of errors that were collected during a
// single validation or processing step. The first error defines the ABCI
// code of the whole group, so that the fail-fast behaviour is preserved.
type multiErr []error

func (errs multiErr) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = "* " + e.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(errs), strings.Join(msgs, "\n\t"))
}

// ABCICode returns the code of the first error in the group.
func (errs multiErr) ABCICode() uint32 {
	return abciCode(errs[0])
}

// Unpack returns all errors that this group is made of.
func (errs multiErr) Unpack() []error {
	return errs
}

// unpacker is implemented by errors that are a group of other errors.
type unpacker interface {
	Unpack() []error
}
