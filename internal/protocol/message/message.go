// Package message defines the typed record contract shared by all schemas,
// the id registry used by frames and the handler dispatch contract.
package message

import (
	"strconv"

	"github.com/danmuck/commsbind/internal/protocol/field"
)

// ID is the numeric message identifier carried by id layers.
type ID uint64

func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// Message is implemented by every concrete message type. Fields returns the
// live members in declared order; mutating them mutates the message.
type Message interface {
	ID() ID
	Name() string
	Fields() []field.Member
	Dispatch(h Handler)
	Clone() Message
}

// Read decodes m from the front of buf. On failure m is left partially
// populated and the returned error names the failing field.
func Read(m Message, buf []byte) (int, error) {
	return field.ReadSequence(buf, m.Fields())
}

func Write(m Message, buf []byte) (int, error) {
	return field.WriteSequence(buf, m.Fields())
}

func Length(m Message) int {
	return field.LengthSequence(m.Fields())
}

func Valid(m Message) bool {
	return field.ValidSequence(m.Fields())
}

func Reset(m Message) {
	field.ResetSequence(m.Fields())
}

// Equal reports whether a and b share an id and all fields compare equal.
func Equal(a, b Message) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID() && a.Name() == b.Name() && field.EqualSequence(a.Fields(), b.Fields())
}

// FieldByName returns the live field called name.
func FieldByName(m Message, name string) (field.Field, bool) {
	for _, mem := range m.Fields() {
		if mem.Name == name {
			return mem.Field, true
		}
	}
	return nil, false
}

// Format renders m as Name(id){field=value, ...}.
func Format(m Message) string {
	return m.Name() + "(" + m.ID().String() + ")" + field.FormatMembers(m.Fields())
}
