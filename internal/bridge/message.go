package bridge

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/field"
	"github.com/danmuck/commsbind/internal/protocol/message"
	"github.com/danmuck/commsbind/internal/protocol/schema"
)

var (
	ErrUnknownField = errors.New("bridge: unknown field")
	ErrFieldKind    = errors.New("bridge: field kind mismatch")
)

// Message is a namespaced message owned by the holder.
type Message struct {
	namespace string
	msg       message.Message
}

func wrap(namespace string, m message.Message) *Message {
	return &Message{namespace: namespace, msg: m}
}

// Clone returns a deep copy.
func (m *Message) Clone() *Message { return wrap(m.namespace, m.msg.Clone()) }

func (m *Message) Name() string      { return m.msg.Name() }
func (m *Message) Namespace() string { return m.namespace }
func (m *Message) ID() message.ID    { return m.msg.ID() }

// QualifiedName is the namespace-prefixed name, e.g. "numeric.Msg1".
func (m *Message) QualifiedName() string { return schema.Qualify(m.namespace, m.msg.Name()) }

// Typed returns a deep copy of the underlying schema message.
func (m *Message) Typed() message.Message { return m.msg.Clone() }

// FieldNames lists the fields in declared order.
func (m *Message) FieldNames() []string {
	fields := m.msg.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func (m *Message) live(name string) (field.Field, error) {
	f, ok := message.FieldByName(m.msg, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, m.QualifiedName(), name)
	}
	return f, nil
}

// Field returns a copy of the named field. Changes to it reach the
// message only through SetField.
func (m *Message) Field(name string) (field.Field, error) {
	f, err := m.live(name)
	if err != nil {
		return nil, err
	}
	return f.Clone(), nil
}

// SetField writes a copy of f into the named slot. f must be of the same
// kind and definition as the slot, typically a value obtained from Field.
func (m *Message) SetField(name string, f field.Field) error {
	dst, err := m.live(name)
	if err != nil {
		return err
	}
	dv, sv := reflect.ValueOf(dst), reflect.ValueOf(f)
	if f == nil || dv.Type() != sv.Type() {
		return fmt.Errorf("%w: %s.%s is %T, got %T", ErrFieldKind, m.QualifiedName(), name, dst, f)
	}
	if dd, ok := dst.(field.Definer); ok {
		if dd.Definition() != f.(field.Definer).Definition() {
			return fmt.Errorf("%w: %s.%s has a different definition", ErrFieldKind, m.QualifiedName(), name)
		}
	}
	dv.Elem().Set(reflect.ValueOf(f.Clone()).Elem())
	return nil
}

// ValueName returns the member name of an enumeration field.
func (m *Message) ValueName(name string) (string, error) {
	f, err := m.live(name)
	if err != nil {
		return "", err
	}
	e, ok := f.(interface{ ValueName() string })
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is not an enumeration", ErrFieldKind, m.QualifiedName(), name)
	}
	return e.ValueName(), nil
}

// DoesExist reports whether an optional field is marked as existing.
func (m *Message) DoesExist(name string) (bool, error) {
	f, err := m.live(name)
	if err != nil {
		return false, err
	}
	o, ok := f.(interface{ DoesExist() bool })
	if !ok {
		return false, fmt.Errorf("%w: %s.%s is not optional", ErrFieldKind, m.QualifiedName(), name)
	}
	return o.DoesExist(), nil
}

// Read decodes the message body from the front of buf.
func (m *Message) Read(buf DataBuf) (int, protocol.ErrorStatus) {
	n, err := message.Read(m.msg, buf.b)
	return n, protocol.StatusOf(err)
}

// Write encodes the message body.
func (m *Message) Write() (DataBuf, protocol.ErrorStatus) {
	b := make([]byte, message.Length(m.msg))
	n, err := message.Write(m.msg, b)
	if err != nil {
		return DataBuf{}, protocol.StatusOf(err)
	}
	return DataBuf{b: b[:n]}, protocol.Success
}

func (m *Message) Length() int { return message.Length(m.msg) }
func (m *Message) Valid() bool { return message.Valid(m.msg) }
func (m *Message) Reset()      { message.Reset(m.msg) }

// Equal compares namespaces, ids and fields.
func (m *Message) Equal(o *Message) bool {
	if o == nil {
		return false
	}
	return m.namespace == o.namespace && message.Equal(m.msg, o.msg)
}

func (m *Message) String() string {
	return m.namespace + "." + message.Format(m.msg)
}
