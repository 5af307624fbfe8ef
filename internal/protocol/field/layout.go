package field

import (
	"bytes"
	"fmt"

	"github.com/danmuck/commsbind/internal/protocol"
)

// Storage selects how a string or data field is delimited on the wire.
type Storage uint8

const (
	// Fixed occupies exactly Size octets, padded with Pad.
	Fixed Storage = iota
	// ZeroTerm runs up to a zero octet or the end of the buffer.
	ZeroTerm
	// Prefixed is preceded by its length encoded with Prefix.
	Prefixed
	// Remaining consumes everything up to the end of the buffer.
	Remaining
)

func (s Storage) String() string {
	switch s {
	case Fixed:
		return "fixed"
	case ZeroTerm:
		return "zero-term"
	case Prefixed:
		return "prefixed"
	case Remaining:
		return "remaining"
	default:
		return fmt.Sprintf("storage(%d)", uint8(s))
	}
}

// Layout is the wire delimitation of a byte sequence.
type Layout struct {
	Storage Storage
	Size    int
	Prefix  Codec
	Pad     byte
}

func (l Layout) length(n int) int {
	switch l.Storage {
	case Fixed:
		return l.Size
	case ZeroTerm:
		return n + 1
	case Prefixed:
		return l.Prefix.Width + n
	default:
		return n
	}
}

// fits reports whether n octets can be represented by the layout.
func (l Layout) fits(n int) bool {
	switch l.Storage {
	case Fixed:
		return n <= l.Size
	case Prefixed:
		return uint64(n) <= l.Prefix.Max()
	default:
		return true
	}
}

// read returns the payload octets (aliasing buf) and the consumed count.
func (l Layout) read(buf []byte) ([]byte, int, error) {
	switch l.Storage {
	case Fixed:
		if len(buf) < l.Size {
			return nil, 0, protocol.ErrNotEnoughData
		}
		return buf[:l.Size], l.Size, nil
	case ZeroTerm:
		idx := bytes.IndexByte(buf, 0)
		if idx < 0 {
			return buf, len(buf), nil
		}
		return buf[:idx], idx + 1, nil
	case Prefixed:
		n, err := l.Prefix.Read(buf)
		if err != nil {
			return nil, 0, err
		}
		w := l.Prefix.Width
		if n > uint64(len(buf)-w) {
			return nil, 0, fmt.Errorf("%w: prefix %d, available %d", protocol.ErrBadLengthPrefix, n, len(buf)-w)
		}
		return buf[w : w+int(n)], w + int(n), nil
	default:
		return buf, len(buf), nil
	}
}

func (l Layout) write(buf []byte, data []byte) (int, error) {
	if l.Storage == Fixed && len(data) > l.Size {
		data = data[:l.Size]
	}
	if !l.fits(len(data)) {
		return 0, fmt.Errorf("%w: %d octets exceed a %d octet length prefix", protocol.ErrInvalidValue, len(data), l.Prefix.Width)
	}
	total := l.length(len(data))
	if len(buf) < total {
		return 0, protocol.ErrBufferOverflow
	}
	switch l.Storage {
	case Fixed:
		n := copy(buf, data)
		for i := n; i < l.Size; i++ {
			buf[i] = l.Pad
		}
	case ZeroTerm:
		n := copy(buf, data)
		buf[n] = 0
	case Prefixed:
		l.Prefix.Put(buf, uint64(len(data)))
		copy(buf[l.Prefix.Width:], data)
	default:
		copy(buf, data)
	}
	return total, nil
}
