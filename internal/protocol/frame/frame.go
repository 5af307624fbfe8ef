// Package frame composes framing layers around a message payload and
// drives decoding of buffered input into dispatched messages.
package frame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/commsbind/internal/observability"
	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/message"
	"github.com/rs/zerolog"
)

var ErrInvalidChain = errors.New("frame: invalid layer chain")

// Limits constrains the sizes a frame accepts.
type Limits struct {
	MaxFrameBytes uint64
}

func DefaultLimits() Limits {
	return Limits{
		MaxFrameBytes: 8 * 1024 * 1024,
	}
}

// Frame is an immutable chain of layers, outermost first, ending in a
// Payload. It holds no per-call state and is safe for concurrent use.
type Frame struct {
	name   string
	reg    *message.Registry
	layers []Layer
	// cover maps a checksum layer index to the index its range starts at.
	cover  []int
	hasID  bool
	soleID message.ID
	limits Limits
}

// New validates the chain and builds a frame decoding messages from reg.
func New(name string, reg *message.Registry, layers ...Layer) (*Frame, error) {
	fail := func(format string, args ...any) (*Frame, error) {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidChain, name, fmt.Sprintf(format, args...))
	}
	if reg == nil || reg.Len() == 0 {
		return fail("no messages registered")
	}
	if len(layers) == 0 {
		return fail("no layers")
	}
	if _, ok := layers[len(layers)-1].(Payload); !ok {
		return fail("innermost layer must be a payload")
	}

	f := &Frame{
		name:   name,
		reg:    reg,
		layers: append([]Layer(nil), layers...),
		cover:  make([]int, len(layers)),
		limits: DefaultLimits(),
	}
	seen := make(map[string]int, len(layers))
	for i, l := range layers {
		n := l.LayerName()
		if _, dup := seen[n]; dup {
			return fail("duplicate layer name %q", n)
		}
		seen[n] = i
		switch l := l.(type) {
		case Sync:
			if len(l.Literal) == 0 {
				return fail("sync layer %q has an empty literal", n)
			}
		case Size:
			if !validWidth(l.Field.Width) {
				return fail("size layer %q width %d", n, l.Field.Width)
			}
		case ID:
			if f.hasID {
				return fail("more than one id layer")
			}
			if !validWidth(l.Field.Width) {
				return fail("id layer %q width %d", n, l.Field.Width)
			}
			f.hasID = true
		case Checksum:
			if !validWidth(l.Field.Width) || !l.Alg.Known() {
				return fail("checksum layer %q width %d alg %s", n, l.Field.Width, l.Alg)
			}
			f.cover[i] = i
			if l.From != "" {
				j, ok := seen[l.From]
				if !ok {
					return fail("checksum layer %q covers from unknown outer layer %q", n, l.From)
				}
				f.cover[i] = j
			}
		case ChecksumPrefix:
			if !validWidth(l.Field.Width) || !l.Alg.Known() {
				return fail("checksum layer %q width %d alg %s", n, l.Field.Width, l.Alg)
			}
		case Payload:
			if i != len(layers)-1 {
				return fail("payload layer %q is not innermost", n)
			}
		default:
			return fail("unsupported layer %T", l)
		}
	}
	if !f.hasID {
		if reg.Len() > 1 {
			return fail("%d messages registered without an id layer", reg.Len())
		}
		f.soleID = reg.IDs()[0]
	}
	f.logger().Trace().Str("layers", f.String()).Int("messages", reg.Len()).Msg("frame built")
	return f, nil
}

// Must is New for package-level schema tables.
func Must(name string, reg *message.Registry, layers ...Layer) *Frame {
	f, err := New(name, reg, layers...)
	if err != nil {
		panic(err)
	}
	return f
}

func validWidth(w int) bool { return w >= 1 && w <= 8 }

// WithLimits returns a copy of f using l. Zero fields keep the defaults.
func (f *Frame) WithLimits(l Limits) *Frame {
	c := *f
	if l.MaxFrameBytes != 0 {
		c.limits.MaxFrameBytes = l.MaxFrameBytes
	}
	return &c
}

func (f *Frame) Name() string                { return f.name }
func (f *Frame) Registry() *message.Registry { return f.reg }
func (f *Frame) Limits() Limits              { return f.limits }

// Layers returns the chain, outermost first.
func (f *Frame) Layers() []Layer { return append([]Layer(nil), f.layers...) }

// String renders the chain as layer names joined outer to inner.
func (f *Frame) String() string {
	names := make([]string, len(f.layers))
	for i, l := range f.layers {
		names[i] = l.LayerName()
	}
	return strings.Join(names, "|")
}

// Length is the number of octets WriteMessage produces for m.
func (f *Frame) Length(m message.Message) int {
	n := message.Length(m)
	for _, l := range f.layers {
		n += l.width()
	}
	return n
}

func (f *Frame) logger() *zerolog.Logger { return observability.FrameLogger(f.name) }

func (f *Frame) recordError(err error) {
	observability.RecordFrameError(f.name, protocol.StatusOf(err).String())
}
