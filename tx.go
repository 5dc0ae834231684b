package pact

import (
	"reflect"
	"strings"

	"github.com/iov-one/pact/errors"
)

// Msg is message for the blockchain to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path. This is used by the Router to
	// locate the proper Handler. Must be of the form
	// "<extension>/<action>".
	Path() string

	// Validate performs a sanity check of the message content. It does
	// not have access to the state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshal, as this almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the
// sender (cryptographic signatures).
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into
// given destination. The destination must be a pointer to the same type
// as the message carried by the transaction. The message is validated
// before returning.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "nil message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrType, "invalid destination, must be a non-nil pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() != reflect.Ptr || src.IsNil() {
		return errors.Wrap(errors.ErrType, "message must be a non-nil pointer")
	}
	if src.Type() != dest.Type() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dest.Elem().Set(src.Elem())

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// ExtractMsgFromSum returns the single message set in given sum structure.
// A sum is a pointer to a struct where every field is an optional message
// and exactly one of them is set. Fields prefixed with XXX_ are ignored.
func ExtractMsgFromSum(sum interface{}) (Msg, error) {
	if sum == nil {
		return nil, errors.Wrap(errors.ErrInput, "message container is nil")
	}
	ptr := reflect.ValueOf(sum)
	if ptr.Kind() != reflect.Ptr {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container type %T", sum)
	}
	if ptr.IsNil() {
		return nil, errors.Wrap(errors.ErrInput, "message container is nil")
	}
	val := ptr.Elem()
	if val.Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container type %T", sum)
	}

	var found Msg
	for i := 0; i < val.NumField(); i++ {
		if strings.HasPrefix(val.Type().Field(i).Name, "XXX_") {
			continue
		}
		field := val.Field(i)
		if field.Kind() != reflect.Ptr {
			return nil, errors.Wrapf(errors.ErrInput, "field %q is not a message", val.Type().Field(i).Name)
		}
		if field.IsNil() {
			continue
		}
		msg, ok := field.Interface().(Msg)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "field %q is not a message", val.Type().Field(i).Name)
		}
		if found != nil {
			return nil, errors.Wrap(errors.ErrInput, "more than one message set")
		}
		found = msg
	}
	if found == nil {
		return nil, errors.Wrap(errors.ErrState, "message container is empty")
	}
	return found, nil
}
