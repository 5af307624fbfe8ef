package frame

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/danmuck/commsbind/internal/observability"
	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/message"
)

// readState is the per-call decoding state. Nothing in it outlives the
// call that created it.
type readState struct {
	buf    []byte
	starts []int
	// confined counts enclosing size layers.
	confined int
	msg      message.Message
	// cache reuses one message per id across frames of a single call.
	cache map[message.ID]message.Message
}

func (st *readState) instance(reg *message.Registry, id message.ID) (message.Message, error) {
	if m, ok := st.cache[id]; ok {
		message.Reset(m)
		return m, nil
	}
	m, err := reg.Create(id)
	if err != nil {
		return nil, err
	}
	if st.cache != nil {
		st.cache[id] = m
	}
	return m, nil
}

// ProcessInputData decodes consecutive frames from buf and dispatches each
// message to h in input order, after the whole frame has been validated.
// It returns the octets consumed by fully processed frames.
//
// A truncated frame after at least one dispatched message is not an error:
// the remainder is left for a later call with more data appended. Any other
// failure stops processing; messages dispatched before it stay dispatched.
//
// Messages handed to h are reused by later frames of the same call.
func (f *Frame) ProcessInputData(buf []byte, h message.Handler) (int, error) {
	st := &readState{
		buf:    buf,
		starts: make([]int, len(f.layers)),
		cache:  make(map[message.ID]message.Message),
	}
	consumed, dispatched := 0, 0
	for consumed < len(buf) {
		st.msg = nil
		next, err := f.read(st, 0, consumed, len(buf))
		if err != nil {
			if dispatched > 0 && errors.Is(err, protocol.ErrNotEnoughData) {
				f.logger().Trace().Int("consumed", consumed).Int("pending", len(buf)-consumed).Msg("partial frame left for next call")
				return consumed, nil
			}
			f.logger().Debug().Err(err).Int("offset", consumed).Msg("frame read failed")
			f.recordError(err)
			return consumed, err
		}
		if next == consumed {
			err := fmt.Errorf("%w: %s frame consumed no data at offset %d", protocol.ErrProtocol, st.msg.Name(), consumed)
			f.recordError(err)
			return consumed, err
		}
		observability.RecordDecoded(f.name, st.msg.Name(), next-consumed)
		consumed = next
		st.msg.Dispatch(h)
		dispatched++
	}
	return consumed, nil
}

// ReadMessage decodes one frame from the front of buf into a fresh message
// without dispatching it.
func (f *Frame) ReadMessage(buf []byte) (message.Message, int, error) {
	st := &readState{buf: buf, starts: make([]int, len(f.layers))}
	next, err := f.read(st, 0, 0, len(buf))
	if err != nil {
		f.recordError(err)
		return nil, 0, err
	}
	observability.RecordDecoded(f.name, st.msg.Name(), next)
	return st.msg, next, nil
}

// read decodes layer i and everything inside it from buf[pos:end] and
// returns the position just past the layer.
func (f *Frame) read(st *readState, i, pos, end int) (int, error) {
	st.starts[i] = pos
	switch l := f.layers[i].(type) {
	case Sync:
		return f.readSync(st, i, l, pos, end)
	case Size:
		return f.readSize(st, i, l, pos, end)
	case ID:
		return f.readID(st, i, l, pos, end)
	case Checksum:
		return f.readChecksum(st, i, l, pos, end)
	case ChecksumPrefix:
		return f.readChecksumPrefix(st, i, l, pos, end)
	case Payload:
		return f.readPayload(st, pos, end)
	default:
		return 0, fmt.Errorf("%w: unsupported layer %T", protocol.ErrProtocol, l)
	}
}

func (f *Frame) readSync(st *readState, i int, l Sync, pos, end int) (int, error) {
	avail := min(end-pos, len(l.Literal))
	if !bytes.Equal(st.buf[pos:pos+avail], l.Literal[:avail]) {
		return 0, fmt.Errorf("%w: %s at offset %d", protocol.ErrInvalidSync, l.LayerName(), pos)
	}
	if avail < len(l.Literal) {
		return 0, protocol.ErrNotEnoughData
	}
	return f.read(st, i+1, pos+len(l.Literal), end)
}

func (f *Frame) readSize(st *readState, i int, l Size, pos, end int) (int, error) {
	v, err := l.Field.Read(st.buf[pos:end])
	if err != nil {
		return 0, err
	}
	if v > f.limits.MaxFrameBytes {
		return 0, fmt.Errorf("%w: %s declares %d octets, limit %d", protocol.ErrProtocol, l.LayerName(), v, f.limits.MaxFrameBytes)
	}
	start := pos + l.Field.Width
	if v > uint64(end-start) {
		return 0, protocol.ErrNotEnoughData
	}
	stop := start + int(v)

	st.confined++
	next, err := f.read(st, i+1, start, stop)
	st.confined--
	if err != nil {
		if errors.Is(err, protocol.ErrNotEnoughData) {
			return 0, fmt.Errorf("%w: %s declares %d octets: %v", protocol.ErrSizeMismatch, l.LayerName(), v, err)
		}
		return 0, err
	}
	if next != stop {
		return 0, fmt.Errorf("%w: %s declares %d octets, inner layers used %d", protocol.ErrSizeMismatch, l.LayerName(), v, next-start)
	}
	return stop, nil
}

func (f *Frame) readID(st *readState, i int, l ID, pos, end int) (int, error) {
	v, err := l.Field.Read(st.buf[pos:end])
	if err != nil {
		return 0, err
	}
	m, err := st.instance(f.reg, message.ID(v))
	if err != nil {
		return 0, err
	}
	st.msg = m
	return f.read(st, i+1, pos+l.Field.Width, end)
}

func (f *Frame) readChecksum(st *readState, i int, l Checksum, pos, end int) (int, error) {
	w := l.Field.Width
	if end-pos < w {
		return 0, protocol.ErrNotEnoughData
	}
	next, err := f.read(st, i+1, pos, end-w)
	if err != nil {
		return 0, err
	}
	from := st.starts[f.cover[i]]
	want := l.Alg.Compute(st.buf[from:next]) & l.Field.Max()
	got := l.Field.Get(st.buf[next:])
	if got != want {
		return 0, fmt.Errorf("%w: %s got %#x, computed %#x", protocol.ErrChecksumFailure, l.LayerName(), got, want)
	}
	return next + w, nil
}

func (f *Frame) readChecksumPrefix(st *readState, i int, l ChecksumPrefix, pos, end int) (int, error) {
	got, err := l.Field.Read(st.buf[pos:end])
	if err != nil {
		return 0, err
	}
	start := pos + l.Field.Width
	next, err := f.read(st, i+1, start, end)
	if err != nil {
		return 0, err
	}
	want := l.Alg.Compute(st.buf[start:next]) & l.Field.Max()
	if got != want {
		return 0, fmt.Errorf("%w: %s got %#x, computed %#x", protocol.ErrChecksumFailure, l.LayerName(), got, want)
	}
	return next, nil
}

func (f *Frame) readPayload(st *readState, pos, end int) (int, error) {
	m := st.msg
	if m == nil {
		var err error
		if m, err = st.instance(f.reg, f.soleID); err != nil {
			return 0, err
		}
		st.msg = m
	}
	n, err := message.Read(m, st.buf[pos:end])
	if err != nil {
		// Outside a size layer a length running past the buffer only means
		// the rest of the frame has not arrived yet.
		if st.confined == 0 && errors.Is(err, protocol.ErrBadLengthPrefix) {
			return 0, fmt.Errorf("%w: %s: %v", protocol.ErrNotEnoughData, m.Name(), err)
		}
		return 0, fmt.Errorf("%s: %w", m.Name(), err)
	}
	return pos + n, nil
}
