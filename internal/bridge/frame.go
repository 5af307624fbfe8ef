package bridge

import (
	"fmt"

	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/frame"
	"github.com/danmuck/commsbind/internal/protocol/message"
)

// Frame encodes and decodes the messages of one namespace.
type Frame struct {
	namespace string
	f         *frame.Frame
}

func (f *Frame) Name() string { return f.f.Name() }

// WithLimits returns a copy of f applying l.
func (f *Frame) WithLimits(l frame.Limits) *Frame {
	return &Frame{namespace: f.namespace, f: f.f.WithLimits(l)}
}

// WriteMessage returns the framed octets of m.
func (f *Frame) WriteMessage(m *Message) (DataBuf, protocol.ErrorStatus) {
	if m.namespace != f.namespace {
		return DataBuf{}, protocol.UnsupportedMsgID
	}
	b, err := f.f.WriteMessage(m.msg)
	if err != nil {
		return DataBuf{}, protocol.StatusOf(err)
	}
	return DataBuf{b: b}, protocol.Success
}

// ProcessInputData decodes frames from buf and hands an owned copy of
// each message to h. It returns the octets consumed by complete frames.
func (f *Frame) ProcessInputData(buf DataBuf, h Handler) (int, protocol.ErrorStatus) {
	n, err := f.f.ProcessInputData(buf.b, &dispatcher{namespace: f.namespace, h: h})
	return n, protocol.StatusOf(err)
}

// dispatcher is the catch-all sink the frame loop sees. It clones each
// message before it leaves the loop.
type dispatcher struct {
	namespace string
	h         Handler
}

func (d *dispatcher) Handle(m message.Message) {
	if d.h == nil {
		return
	}
	d.h.HandleMessage(wrap(d.namespace, m.Clone()))
}

func (f *Frame) String() string {
	return fmt.Sprintf("%s[%s]", f.f.Name(), f.f.String())
}
