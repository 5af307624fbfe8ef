package frame

import (
	"fmt"

	"github.com/danmuck/commsbind/internal/observability"
	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/message"
)

type writeState struct {
	buf    []byte
	starts []int
	msg    message.Message
}

// WriteMessage allocates Length(m) octets and writes the framed message.
func (f *Frame) WriteMessage(m message.Message) ([]byte, error) {
	buf := make([]byte, f.Length(m))
	n, err := f.Write(buf, m)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Write frames m into the front of buf. Inner layers are written first so
// size and checksum layers can be filled in around them.
func (f *Frame) Write(buf []byte, m message.Message) (int, error) {
	if err := f.accepts(m); err != nil {
		f.recordError(err)
		return 0, err
	}
	st := &writeState{buf: buf, starts: make([]int, len(f.layers)), msg: m}
	n, err := f.write(st, 0, 0)
	if err != nil {
		f.logger().Debug().Err(err).Str("message", m.Name()).Msg("frame write failed")
		f.recordError(err)
		return 0, err
	}
	observability.RecordEncoded(f.name, m.Name(), n)
	return n, nil
}

func (f *Frame) accepts(m message.Message) error {
	if f.hasID {
		if !f.reg.Has(m.ID()) {
			return fmt.Errorf("%w: %s id %d", protocol.ErrUnsupportedMsgID, m.Name(), m.ID())
		}
		return nil
	}
	if m.ID() != f.soleID {
		return fmt.Errorf("%w: %s id %d, frame carries only %d", protocol.ErrUnsupportedMsgID, m.Name(), m.ID(), f.soleID)
	}
	return nil
}

func (f *Frame) write(st *writeState, i, pos int) (int, error) {
	st.starts[i] = pos
	buf := st.buf
	room := func(n int) error {
		if len(buf)-pos < n {
			return protocol.ErrBufferOverflow
		}
		return nil
	}
	switch l := f.layers[i].(type) {
	case Sync:
		if err := room(len(l.Literal)); err != nil {
			return 0, err
		}
		copy(buf[pos:], l.Literal)
		return f.write(st, i+1, pos+len(l.Literal))

	case Size:
		w := l.Field.Width
		if err := room(w); err != nil {
			return 0, err
		}
		next, err := f.write(st, i+1, pos+w)
		if err != nil {
			return 0, err
		}
		size := uint64(next - pos - w)
		if size > l.Field.Max() || size > f.limits.MaxFrameBytes {
			return 0, fmt.Errorf("%w: %s cannot encode %d octets", protocol.ErrProtocol, l.LayerName(), size)
		}
		l.Field.Put(buf[pos:], size)
		return next, nil

	case ID:
		id := uint64(st.msg.ID())
		if id > l.Field.Max() {
			return 0, fmt.Errorf("%w: %s cannot encode id %d", protocol.ErrProtocol, l.LayerName(), id)
		}
		if err := room(l.Field.Width); err != nil {
			return 0, err
		}
		l.Field.Put(buf[pos:], id)
		return f.write(st, i+1, pos+l.Field.Width)

	case Checksum:
		next, err := f.write(st, i+1, pos)
		if err != nil {
			return 0, err
		}
		if len(buf)-next < l.Field.Width {
			return 0, protocol.ErrBufferOverflow
		}
		from := st.starts[f.cover[i]]
		l.Field.Put(buf[next:], l.Alg.Compute(buf[from:next]))
		return next + l.Field.Width, nil

	case ChecksumPrefix:
		w := l.Field.Width
		if err := room(w); err != nil {
			return 0, err
		}
		next, err := f.write(st, i+1, pos+w)
		if err != nil {
			return 0, err
		}
		l.Field.Put(buf[pos:], l.Alg.Compute(buf[pos+w:next]))
		return next, nil

	case Payload:
		n, err := message.Write(st.msg, buf[pos:])
		if err != nil {
			return 0, fmt.Errorf("%s: %w", st.msg.Name(), err)
		}
		return pos + n, nil

	default:
		return 0, fmt.Errorf("%w: unsupported layer %T", protocol.ErrProtocol, l)
	}
}
