package field

import (
	"fmt"

	"github.com/danmuck/commsbind/internal/protocol"
)

// Field is the contract shared by all field kinds.
type Field interface {
	Read(buf []byte) (int, error)
	Write(buf []byte) (int, error)
	Length() int
	Valid() bool
	Reset()
	Clone() Field
	Equal(other Field) bool
	fmt.Stringer
}

// Definer is implemented by field kinds backed by a shared definition.
// Two fields with the same definition occupy interchangeable slots.
type Definer interface {
	Definition() any
}

// Member is a named slot in a bundle or message.
type Member struct {
	Name  string
	Field Field
}

// Copy returns a deep copy of the field value behind f.
func Copy[T any, P interface {
	*T
	Field
}](f P) T {
	return *f.Clone().(P)
}

// ReadSequence reads members in order. On failure nothing is reported as
// consumed; members read before the failure keep their decoded values.
func ReadSequence(buf []byte, members []Member) (int, error) {
	pos := 0
	for _, m := range members {
		n, err := m.Field.Read(buf[pos:])
		if err != nil {
			return 0, protocol.WrapField(m.Name, err)
		}
		pos += n
	}
	return pos, nil
}

// WriteSequence writes members in order after checking the total length.
func WriteSequence(buf []byte, members []Member) (int, error) {
	if len(buf) < LengthSequence(members) {
		return 0, protocol.ErrBufferOverflow
	}
	pos := 0
	for _, m := range members {
		n, err := m.Field.Write(buf[pos:])
		if err != nil {
			return 0, protocol.WrapField(m.Name, err)
		}
		pos += n
	}
	return pos, nil
}

func LengthSequence(members []Member) int {
	total := 0
	for _, m := range members {
		total += m.Field.Length()
	}
	return total
}

func ValidSequence(members []Member) bool {
	for _, m := range members {
		if !m.Field.Valid() {
			return false
		}
	}
	return true
}

func ResetSequence(members []Member) {
	for _, m := range members {
		m.Field.Reset()
	}
}

// EqualSequence compares members pairwise by position.
func EqualSequence(a, b []Member) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Field.Equal(b[i].Field) {
			return false
		}
	}
	return true
}
