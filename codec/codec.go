/*
Package codec holds the wire helpers used by hand written protobuf
messages. Messages implement Marshal and Unmarshal on top of the gogo
proto Buffer, so encoding never goes through reflection and every
message stays compatible with the protobuf wire format.
*/
package codec

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/errors"
)

// Marshaler is any message that can serialize itself.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler is any message that can load itself from bytes.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Writer serializes fields in protobuf wire format. Zero values are
// skipped like proto3 does. The first error is kept and returned by
// Bytes.
type Writer struct {
	buf *proto.Buffer
	err error
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{buf: proto.NewBuffer(nil)}
}

func (w *Writer) tag(field int, wire int) {
	if w.err != nil {
		return
	}
	w.err = w.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Bytes writes a length delimited field.
func (w *Writer) Bytes(field int, b []byte) *Writer {
	if len(b) == 0 {
		return w
	}
	return w.rawBytes(field, b)
}

func (w *Writer) rawBytes(field int, b []byte) *Writer {
	w.tag(field, proto.WireBytes)
	if w.err == nil {
		w.err = w.buf.EncodeRawBytes(b)
	}
	return w
}

// RepeatedBytes writes every element, including empty ones.
func (w *Writer) RepeatedBytes(field int, list [][]byte) *Writer {
	for _, b := range list {
		w.rawBytes(field, b)
	}
	return w
}

// String writes a string field.
func (w *Writer) String(field int, s string) *Writer {
	return w.Bytes(field, []byte(s))
}

// Uint64 writes a varint field.
func (w *Writer) Uint64(field int, v uint64) *Writer {
	if v == 0 {
		return w
	}
	w.tag(field, proto.WireVarint)
	if w.err == nil {
		w.err = w.buf.EncodeVarint(v)
	}
	return w
}

// Int64 writes a varint field. Negative values take ten bytes as in
// proto3 int64.
func (w *Writer) Int64(field int, v int64) *Writer {
	return w.Uint64(field, uint64(v))
}

// Bool writes a boolean field.
func (w *Writer) Bool(field int, v bool) *Writer {
	if !v {
		return w
	}
	return w.Uint64(field, 1)
}

// Message writes an embedded message. A nil message is skipped.
func (w *Writer) Message(field int, m Marshaler) *Writer {
	if w.err != nil || isNil(m) {
		return w
	}
	raw, err := m.Marshal()
	if err != nil {
		w.err = err
		return w
	}
	return w.rawBytes(field, raw)
}

// Result returns the serialized message or the first error that occurred.
func (w *Writer) Result() ([]byte, error) {
	if w.err != nil {
		return nil, errors.Wrap(errors.ErrModel, w.err.Error())
	}
	return w.buf.Bytes(), nil
}

// Field is a single decoded field passed to the Decode callback.
type Field struct {
	Num    int
	Wire   int
	varint uint64
	raw    []byte
}

// Uint64 returns the value of a varint field.
func (f Field) Uint64() (uint64, error) {
	if f.Wire != proto.WireVarint {
		return 0, errors.Wrapf(errors.ErrModel, "field %d: expected varint", f.Num)
	}
	return f.varint, nil
}

// Int64 returns the value of a varint field as signed integer.
func (f Field) Int64() (int64, error) {
	v, err := f.Uint64()
	return int64(v), err
}

// Bool returns the value of a varint field as boolean.
func (f Field) Bool() (bool, error) {
	v, err := f.Uint64()
	return v != 0, err
}

// Bytes returns a copy of a length delimited field.
func (f Field) Bytes() ([]byte, error) {
	if f.Wire != proto.WireBytes {
		return nil, errors.Wrapf(errors.ErrModel, "field %d: expected bytes", f.Num)
	}
	out := make([]byte, len(f.raw))
	copy(out, f.raw)
	return out, nil
}

// String returns a length delimited field as string.
func (f Field) String() (string, error) {
	b, err := f.Bytes()
	return string(b), err
}

// Message loads an embedded message into dest.
func (f Field) Message(dest Unmarshaler) error {
	if f.Wire != proto.WireBytes {
		return errors.Wrapf(errors.ErrModel, "field %d: expected message", f.Num)
	}
	return dest.Unmarshal(f.raw)
}

// Decode walks all fields of a serialized message and calls fn for each
// of them. Unknown fields must be ignored by fn to keep forward
// compatibility.
func Decode(data []byte, fn func(Field) error) error {
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrModel, "invalid field tag")
		}
		data = data[n:]
		f := Field{Num: int(tag >> 3), Wire: int(tag & 0x7)}
		if f.Num <= 0 {
			return errors.Wrapf(errors.ErrModel, "illegal field number %d", f.Num)
		}
		switch f.Wire {
		case proto.WireVarint:
			f.varint, n = proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrapf(errors.ErrModel, "field %d: invalid varint", f.Num)
			}
		case proto.WireBytes:
			size, m := proto.DecodeVarint(data)
			if m == 0 || uint64(len(data)-m) < size {
				return errors.Wrapf(errors.ErrModel, "field %d: unexpected end of data", f.Num)
			}
			f.raw = data[m : m+int(size)]
			n = m + int(size)
		case proto.WireFixed64:
			n = 8
		case proto.WireFixed32:
			n = 4
		default:
			return errors.Wrapf(errors.ErrModel, "field %d: unsupported wire type %d", f.Num, f.Wire)
		}
		if len(data) < n {
			return errors.Wrapf(errors.ErrModel, "field %d: unexpected end of data", f.Num)
		}
		data = data[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func isNil(m Marshaler) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
