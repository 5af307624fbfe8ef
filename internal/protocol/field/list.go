package field

import (
	"fmt"
	"strings"

	"github.com/danmuck/commsbind/internal/protocol"
)

// ListDef describes a list. A nil CountPrefix reads elements until the end
// of the buffer. MaxCount of zero means unbounded.
type ListDef struct {
	Name        string
	CountPrefix *Codec
	MaxCount    int
}

// List is a sequence of elements of type T whose pointer P implements Field.
type List[T any, P interface {
	*T
	Field
}] struct {
	def     *ListDef
	newElem func() T
	elems   []T
}

func NewList[T any, P interface {
	*T
	Field
}](def *ListDef, newElem func() T) List[T, P] {
	return List[T, P]{def: def, newElem: newElem}
}

func (l *List[T, P]) Len() int { return len(l.elems) }

func (l *List[T, P]) Definition() any { return l.def }

// At returns the live element at i.
func (l *List[T, P]) At(i int) P { return P(&l.elems[i]) }

func (l *List[T, P]) Append(v T) { l.elems = append(l.elems, v) }

// Resize grows with default elements or truncates.
func (l *List[T, P]) Resize(n int) {
	for len(l.elems) < n {
		l.elems = append(l.elems, l.newElem())
	}
	l.elems = l.elems[:n]
}

func (l *List[T, P]) Read(buf []byte) (int, error) {
	l.elems = l.elems[:0]
	pos := 0
	if l.def.CountPrefix != nil {
		count, err := l.def.CountPrefix.Read(buf)
		if err != nil {
			return 0, err
		}
		if l.def.MaxCount > 0 && count > uint64(l.def.MaxCount) {
			return 0, fmt.Errorf("%w: %s count %d, at most %d", protocol.ErrInvalidValue, l.def.Name, count, l.def.MaxCount)
		}
		pos = l.def.CountPrefix.Width
		for i := uint64(0); i < count; i++ {
			n, err := l.readElem(buf[pos:], i)
			if err != nil {
				return 0, err
			}
			// Empty elements are bounded only by MaxCount.
			if n == 0 && l.def.MaxCount == 0 {
				return 0, fmt.Errorf("%w: %s element consumed no data", protocol.ErrProtocol, l.def.Name)
			}
			pos += n
		}
		return pos, nil
	}
	for i := uint64(0); pos < len(buf); i++ {
		n, err := l.readElem(buf[pos:], i)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, fmt.Errorf("%w: %s element consumed no data", protocol.ErrProtocol, l.def.Name)
		}
		pos += n
	}
	return pos, nil
}

func (l *List[T, P]) readElem(buf []byte, idx uint64) (int, error) {
	e := l.newElem()
	n, err := P(&e).Read(buf)
	if err != nil {
		return 0, protocol.WrapField(fmt.Sprintf("%s[%d]", l.def.Name, idx), err)
	}
	l.elems = append(l.elems, e)
	return n, nil
}

func (l *List[T, P]) Write(buf []byte) (int, error) {
	if l.def.CountPrefix != nil && uint64(len(l.elems)) > l.def.CountPrefix.Max() {
		return 0, fmt.Errorf("%w: %s count %d exceeds its %d octet prefix", protocol.ErrInvalidValue, l.def.Name, len(l.elems), l.def.CountPrefix.Width)
	}
	if len(buf) < l.Length() {
		return 0, protocol.ErrBufferOverflow
	}
	pos := 0
	if l.def.CountPrefix != nil {
		l.def.CountPrefix.Put(buf, uint64(len(l.elems)))
		pos = l.def.CountPrefix.Width
	}
	for i := range l.elems {
		n, err := P(&l.elems[i]).Write(buf[pos:])
		if err != nil {
			return 0, err
		}
		pos += n
	}
	return pos, nil
}

func (l *List[T, P]) Length() int {
	total := 0
	if l.def.CountPrefix != nil {
		total = l.def.CountPrefix.Width
	}
	for i := range l.elems {
		total += P(&l.elems[i]).Length()
	}
	return total
}

func (l *List[T, P]) Valid() bool {
	if l.def.MaxCount > 0 && len(l.elems) > l.def.MaxCount {
		return false
	}
	if l.def.CountPrefix != nil && uint64(len(l.elems)) > l.def.CountPrefix.Max() {
		return false
	}
	for i := range l.elems {
		if !P(&l.elems[i]).Valid() {
			return false
		}
	}
	return true
}

func (l *List[T, P]) Reset() { l.elems = nil }

func (l *List[T, P]) Clone() Field {
	c := List[T, P]{def: l.def, newElem: l.newElem}
	if l.elems != nil {
		c.elems = make([]T, len(l.elems))
		for i := range l.elems {
			c.elems[i] = Copy[T, P](&l.elems[i])
		}
	}
	return &c
}

func (l *List[T, P]) Equal(other Field) bool {
	o, ok := other.(*List[T, P])
	if !ok || len(o.elems) != len(l.elems) {
		return false
	}
	for i := range l.elems {
		if !P(&l.elems[i]).Equal(P(&o.elems[i])) {
			return false
		}
	}
	return true
}

func (l *List[T, P]) String() string {
	parts := make([]string, len(l.elems))
	for i := range l.elems {
		parts[i] = P(&l.elems[i]).String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
