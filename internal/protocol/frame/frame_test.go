package frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/commsbind/internal/observability"
	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/checksum"
	"github.com/danmuck/commsbind/internal/protocol/field"
	"github.com/danmuck/commsbind/internal/protocol/message"
	"github.com/danmuck/commsbind/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	seqDef  = &field.IntDef[uint16]{Name: "seq", Codec: field.Codec{Width: 2}}
	textDef = &field.StringDef{Name: "text", Layout: field.Layout{Storage: field.Prefixed, Prefix: field.Codec{Width: 1}}}
)

type ping struct{ seq field.Int[uint16] }

func newPing(seq uint16) *ping {
	m := &ping{seq: field.NewInt(seqDef)}
	m.seq.SetValue(seq)
	return m
}

func (m *ping) ID() message.ID           { return 1 }
func (m *ping) Name() string             { return "Ping" }
func (m *ping) Fields() []field.Member   { return []field.Member{{Name: "seq", Field: &m.seq}} }
func (m *ping) Dispatch(h message.Handler) { message.Route(h, m, pingHandler.HandlePing) }
func (m *ping) Clone() message.Message   { c := *m; return &c }

type note struct{ text field.String }

func newNote(s string) *note {
	m := &note{text: field.NewString(textDef)}
	m.text.SetValue(s)
	return m
}

func (m *note) ID() message.ID           { return 2 }
func (m *note) Name() string             { return "Note" }
func (m *note) Fields() []field.Member   { return []field.Member{{Name: "text", Field: &m.text}} }
func (m *note) Dispatch(h message.Handler) {
	if h != nil {
		h.Handle(m)
	}
}
func (m *note) Clone() message.Message   { c := *m; return &c }

type pingHandler interface{ HandlePing(m *ping) }

type collector struct {
	pings []*ping
	other []message.Message
}

func (c *collector) HandlePing(m *ping)       { c.pings = append(c.pings, m.Clone().(*ping)) }
func (c *collector) Handle(m message.Message) { c.other = append(c.other, m.Clone()) }

func (c *collector) total() int { return len(c.pings) + len(c.other) }

var registry = message.MustRegistry(
	func() message.Message { return newPing(0) },
	func() message.Message { return newNote("") },
)

func fullFrame(t *testing.T) *Frame {
	t.Helper()
	return Must("test.Full", registry,
		Sync{Name: "sync", Literal: []byte{0xab, 0xcd}},
		Checksum{Name: "crc", Field: field.Codec{Width: 2}, Alg: checksum.CRCCCITT, From: "sync"},
		Size{Name: "size", Field: field.Codec{Width: 2}},
		ID{Name: "id", Field: field.Codec{Width: 1}},
		Payload{Name: "payload"},
	)
}

func bareFrame(t *testing.T) *Frame {
	t.Helper()
	return Must("test.Bare", registry, ID{Field: field.Codec{Width: 1}}, Payload{})
}

func sizedFrame(t *testing.T) *Frame {
	t.Helper()
	return Must("test.Sized", registry, Size{Field: field.Codec{Width: 1}}, ID{Field: field.Codec{Width: 1}}, Payload{})
}

func write(t *testing.T, f *Frame, m message.Message) []byte {
	t.Helper()
	buf, err := f.WriteMessage(m)
	if err != nil {
		t.Fatalf("write %s: %v", m.Name(), err)
	}
	if len(buf) != f.Length(m) {
		t.Fatalf("expected %d octets, got %d", f.Length(m), len(buf))
	}
	return buf
}

func TestFullFrameLayout(t *testing.T) {
	testlog.Start(t)
	f := fullFrame(t)
	buf := write(t, f, newPing(0x0102))

	head := []byte{0xab, 0xcd, 0x00, 0x03, 0x01, 0x01, 0x02}
	if !bytes.Equal(buf[:len(head)], head) {
		t.Fatalf("expected head % x, got % x", head, buf)
	}
	crc := checksum.CRCCCITT.Compute(head)
	if buf[7] != byte(crc>>8) || buf[8] != byte(crc) {
		t.Fatalf("expected checksum %#04x, got % x", crc, buf[7:])
	}
}

func TestRoundTripDispatch(t *testing.T) {
	testlog.Start(t)
	for _, f := range []*Frame{fullFrame(t), bareFrame(t), sizedFrame(t)} {
		in := newNote("hello")
		buf := write(t, f, in)
		var c collector
		n, err := f.ProcessInputData(buf, &c)
		if err != nil || n != len(buf) {
			t.Fatalf("%s: expected %d consumed, got %d (%v)", f.Name(), len(buf), n, err)
		}
		if len(c.other) != 1 || !message.Equal(in, c.other[0]) {
			t.Fatalf("%s: expected %s, got %v", f.Name(), message.Format(in), c.other)
		}
	}
}

func TestDispatchExclusivity(t *testing.T) {
	testlog.Start(t)
	f := fullFrame(t)
	buf := append(write(t, f, newPing(7)), write(t, f, newNote("x"))...)
	var c collector
	if _, err := f.ProcessInputData(buf, &c); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(c.pings) != 1 || len(c.other) != 1 {
		t.Fatalf("expected one specific and one catch-all, got %d and %d", len(c.pings), len(c.other))
	}
	if c.pings[0].seq.Value() != 7 {
		t.Fatalf("expected seq 7, got %d", c.pings[0].seq.Value())
	}
}

func TestMultipleFramesWithPartialTail(t *testing.T) {
	testlog.Start(t)
	f := fullFrame(t)
	one := write(t, f, newPing(1))
	two := write(t, f, newPing(2))
	three := write(t, f, newPing(3))
	buf := append(append(append([]byte{}, one...), two...), three[:4]...)

	var c collector
	n, err := f.ProcessInputData(buf, &c)
	if err != nil {
		t.Fatalf("partial tail after success must not fail: %v", err)
	}
	if n != len(one)+len(two) || len(c.pings) != 2 {
		t.Fatalf("expected 2 frames / %d octets, got %d / %d", len(one)+len(two), len(c.pings), n)
	}
	if c.pings[0].seq.Value() != 1 || c.pings[1].seq.Value() != 2 {
		t.Fatalf("dispatch order mismatch")
	}

	rest := append(buf[n:], three[4:]...)
	n, err = f.ProcessInputData(rest, &c)
	if err != nil || n != len(three) || c.pings[2].seq.Value() != 3 {
		t.Fatalf("resumed frame: n=%d err=%v", n, err)
	}
}

func TestPartialFirstFrameIsNotEnoughData(t *testing.T) {
	testlog.Start(t)
	f := fullFrame(t)
	buf := write(t, f, newPing(1))
	for cut := 1; cut < len(buf); cut++ {
		var c collector
		n, err := f.ProcessInputData(buf[:cut], &c)
		if !errors.Is(err, protocol.ErrNotEnoughData) || n != 0 || c.total() != 0 {
			t.Fatalf("cut %d: expected NotEnoughData, got n=%d err=%v", cut, n, err)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	n, err := fullFrame(t).ProcessInputData(nil, &collector{})
	if n != 0 || err != nil {
		t.Fatalf("expected 0, nil, got %d, %v", n, err)
	}
}

func TestChecksumFailureSuppressesDispatch(t *testing.T) {
	testlog.Start(t)
	f := fullFrame(t)
	buf := write(t, f, newPing(9))
	buf[6] ^= 0xff
	var c collector
	n, err := f.ProcessInputData(buf, &c)
	if !errors.Is(err, protocol.ErrChecksumFailure) || n != 0 || c.total() != 0 {
		t.Fatalf("expected ChecksumFailure without dispatch, got n=%d err=%v handled=%d", n, err, c.total())
	}
	if protocol.StatusOf(err) != protocol.ChecksumFailure {
		t.Fatalf("expected ChecksumFailure status, got %s", protocol.StatusOf(err))
	}
}

func TestInvalidSyncAfterSuccess(t *testing.T) {
	testlog.Start(t)
	f := fullFrame(t)
	one := write(t, f, newPing(1))
	bad := write(t, f, newPing(2))
	bad[1] = 0x00
	var c collector
	n, err := f.ProcessInputData(append(one, bad...), &c)
	if !errors.Is(err, protocol.ErrInvalidSync) {
		t.Fatalf("expected InvalidSync, got %v", err)
	}
	if n != len(one) || len(c.pings) != 1 {
		t.Fatalf("expected first frame kept, got n=%d handled=%d", n, len(c.pings))
	}
}

func TestInvalidSyncOnPartialLiteral(t *testing.T) {
	_, err := fullFrame(t).ProcessInputData([]byte{0x00}, &collector{})
	if !errors.Is(err, protocol.ErrInvalidSync) {
		t.Fatalf("expected InvalidSync, got %v", err)
	}
}

func TestUnsupportedMessageID(t *testing.T) {
	testlog.Start(t)
	_, err := bareFrame(t).ProcessInputData([]byte{0x09, 0x00, 0x00}, &collector{})
	if !errors.Is(err, protocol.ErrUnsupportedMsgID) {
		t.Fatalf("expected UnsupportedMsgID, got %v", err)
	}
}

func TestShortPayloadDependsOnSizeLayer(t *testing.T) {
	testlog.Start(t)
	// Ping needs two payload octets; only one is available.
	if _, err := bareFrame(t).ProcessInputData([]byte{0x01, 0x05}, &collector{}); !errors.Is(err, protocol.ErrNotEnoughData) {
		t.Fatalf("without size layer expected NotEnoughData, got %v", err)
	}
	if _, err := sizedFrame(t).ProcessInputData([]byte{0x02, 0x01, 0x05}, &collector{}); !errors.Is(err, protocol.ErrSizeMismatch) {
		t.Fatalf("with size layer expected SizeMismatch, got %v", err)
	}
	// Note whose length prefix runs past the buffer.
	if _, err := bareFrame(t).ProcessInputData([]byte{0x02, 0x04, 'a'}, &collector{}); !errors.Is(err, protocol.ErrNotEnoughData) {
		t.Fatalf("truncated note without size layer expected NotEnoughData, got %v", err)
	}
}

func TestSizeLargerThanPayload(t *testing.T) {
	testlog.Start(t)
	var c collector
	_, err := sizedFrame(t).ProcessInputData([]byte{0x04, 0x01, 0x00, 0x05, 0xff}, &c)
	if !errors.Is(err, protocol.ErrSizeMismatch) || c.total() != 0 {
		t.Fatalf("expected SizeMismatch, got %v", err)
	}
}

func TestSizeLimit(t *testing.T) {
	f := fullFrame(t).WithLimits(Limits{MaxFrameBytes: 2})
	buf := write(t, fullFrame(t), newPing(1))
	if _, err := f.ProcessInputData(buf, &collector{}); !errors.Is(err, protocol.ErrProtocol) {
		t.Fatalf("expected ErrProtocol for size above limit, got %v", err)
	}
	if _, err := f.WriteMessage(newPing(1)); !errors.Is(err, protocol.ErrProtocol) {
		t.Fatalf("expected ErrProtocol writing above limit, got %v", err)
	}
}

func TestChecksumPrefix(t *testing.T) {
	testlog.Start(t)
	f := Must("test.Prefix", registry,
		ChecksumPrefix{Field: field.Codec{Width: 1}, Alg: checksum.Sum},
		ID{Field: field.Codec{Width: 1}},
		Payload{},
	)
	buf := write(t, f, newPing(0x0203))
	if !bytes.Equal(buf, []byte{0x06, 0x01, 0x02, 0x03}) {
		t.Fatalf("expected 06 01 02 03, got % x", buf)
	}
	var c collector
	if n, err := f.ProcessInputData(buf, &c); err != nil || n != 4 || len(c.pings) != 1 {
		t.Fatalf("round trip: n=%d err=%v", n, err)
	}
	buf[0] = 0x07
	if _, err := f.ProcessInputData(buf, &c); !errors.Is(err, protocol.ErrChecksumFailure) {
		t.Fatalf("expected ChecksumFailure, got %v", err)
	}
}

func TestSingleMessageFrameWithoutID(t *testing.T) {
	reg := message.MustRegistry(func() message.Message { return newPing(0) })
	f := Must("test.Single", reg, Size{Field: field.Codec{Width: 1}}, Payload{})
	buf := write(t, f, newPing(5))
	if !bytes.Equal(buf, []byte{0x02, 0x00, 0x05}) {
		t.Fatalf("expected 02 00 05, got % x", buf)
	}
	m, n, err := f.ReadMessage(buf)
	if err != nil || n != 3 || m.(*ping).seq.Value() != 5 {
		t.Fatalf("read message: %v n=%d err=%v", m, n, err)
	}
	if _, err := f.WriteMessage(newNote("no")); !errors.Is(err, protocol.ErrUnsupportedMsgID) {
		t.Fatalf("expected UnsupportedMsgID for foreign message, got %v", err)
	}
}

func TestWriteOverflow(t *testing.T) {
	f := fullFrame(t)
	if _, err := f.Write(make([]byte, 4), newPing(1)); !errors.Is(err, protocol.ErrBufferOverflow) {
		t.Fatalf("expected BufferOverflow, got %v", err)
	}
}

func TestNewRejectsBadChains(t *testing.T) {
	single := message.MustRegistry(func() message.Message { return newPing(0) })
	cases := map[string]struct {
		reg    *message.Registry
		layers []Layer
	}{
		"no payload":       {single, []Layer{Size{Field: field.Codec{Width: 1}}}},
		"payload not last": {single, []Layer{Payload{}, Size{Field: field.Codec{Width: 1}}, Payload{Name: "p2"}}},
		"missing id":       {registry, []Layer{Payload{}}},
		"duplicate names":  {single, []Layer{Size{Name: "x", Field: field.Codec{Width: 1}}, Payload{Name: "x"}}},
		"checksum from":    {single, []Layer{Checksum{Field: field.Codec{Width: 1}, From: "later"}, Payload{}}},
		"empty sync":       {single, []Layer{Sync{}, Payload{}}},
		"bad width":        {single, []Layer{Size{Field: field.Codec{Width: 9}}, Payload{}}},
		"no messages":      {nil, []Layer{Payload{}}},
		"unknown alg":      {single, []Layer{Checksum{Field: field.Codec{Width: 1}, Alg: checksum.Alg(99)}, Payload{}}},
		"two id layers":    {registry, []Layer{ID{Name: "a", Field: field.Codec{Width: 1}}, ID{Name: "b", Field: field.Codec{Width: 1}}, Payload{}}},
	}
	for name, tc := range cases {
		if _, err := New("test.Bad", tc.reg, tc.layers...); !errors.Is(err, ErrInvalidChain) {
			t.Fatalf("%s: expected ErrInvalidChain, got %v", name, err)
		}
	}
}

func TestFrameRecordsMetrics(t *testing.T) {
	f := Must("test.Metrics", registry, ID{Field: field.Codec{Width: 1}}, Payload{})
	buf := write(t, f, newPing(1))
	if _, err := f.ProcessInputData(append(buf, buf...), &collector{}); err != nil {
		t.Fatalf("process: %v", err)
	}
	if _, err := f.ProcessInputData([]byte{0x09}, &collector{}); err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if got := testutil.ToFloat64(observability.Decoded("test.Metrics", "Ping")); got != 2 {
		t.Fatalf("expected 2 decoded, got %v", got)
	}
	if got := testutil.ToFloat64(observability.Errors("test.Metrics", "UnsupportedMsgId")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
}

type heartbeat struct{}

func (m *heartbeat) ID() message.ID         { return 7 }
func (m *heartbeat) Name() string           { return "Heartbeat" }
func (m *heartbeat) Fields() []field.Member { return nil }
func (m *heartbeat) Clone() message.Message { return &heartbeat{} }

func (m *heartbeat) Dispatch(h message.Handler) {
	if h != nil {
		h.Handle(m)
	}
}

func TestEmptyFrameStopsInsteadOfLooping(t *testing.T) {
	testlog.Start(t)
	reg := message.MustRegistry(func() message.Message { return &heartbeat{} })
	f := Must("test.Heartbeat", reg, Payload{})
	c := &collector{}
	n, err := f.ProcessInputData([]byte{0x01}, c)
	if !errors.Is(err, protocol.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
	if n != 0 || c.total() != 0 {
		t.Fatalf("expected nothing consumed or dispatched, got n=%d dispatched=%d", n, c.total())
	}
}

func TestConstructionLogsStayBelowDebug(t *testing.T) {
	testlog.Start(t)
	prev := log.Logger
	defer func() { log.Logger = prev }()
	var out bytes.Buffer
	log.Logger = zerolog.New(&out).Level(zerolog.DebugLevel)

	reg := message.MustRegistry(func() message.Message { return newPing(0) })
	Must("test.Quiet", reg, Size{Field: field.Codec{Width: 1}}, Payload{})
	if out.Len() != 0 {
		t.Fatalf("expected no debug output while building, got %q", out.String())
	}
}
