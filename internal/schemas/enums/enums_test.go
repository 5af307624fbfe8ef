package enums

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/field"
	"github.com/danmuck/commsbind/internal/protocol/message"
	"github.com/danmuck/commsbind/internal/protocol/schema"
	"github.com/danmuck/commsbind/internal/testutil/testlog"
)

type recorder struct {
	msgs     []message.Message
	specific int
	generic  int
}

func (r *recorder) Handle(m message.Message) {
	r.generic++
	r.msgs = append(r.msgs, m.Clone())
}

func (r *recorder) HandleMsg1(m *Msg1) {
	r.specific++
	r.msgs = append(r.msgs, m.Clone())
}

func roundTrip(t *testing.T, m message.Message) message.Message {
	t.Helper()
	buf, err := Frame.WriteMessage(m)
	if err != nil {
		t.Fatalf("write %s: %v", m.Name(), err)
	}
	var r recorder
	n, err := Frame.ProcessInputData(buf, &r)
	if err != nil || n != len(buf) || len(r.msgs) != 1 {
		t.Fatalf("process %s: n=%d err=%v msgs=%d", m.Name(), n, err, len(r.msgs))
	}
	if !message.Equal(m, r.msgs[0]) {
		t.Fatalf("expected %s, got %s", message.Format(m), message.Format(r.msgs[0]))
	}
	return r.msgs[0]
}

func TestMsg1Enumerations(t *testing.T) {
	testlog.Start(t)
	m := NewMsg1()
	m.F1.SetValue(E1V2)
	m.F2.SetValue(MsgIdM5)
	m.F4.SetValue(Msg1F4V3)

	if got := m.F4.ValueName(); got != "V3" {
		t.Fatalf("expected V3, got %q", got)
	}
	if got := m.F2.ValueName(); got != "m5" {
		t.Fatalf("expected m5, got %q", got)
	}

	buf, err := Frame.WriteMessage(m)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{'E', 0x06, 0x00, 0x01, 0x01, 0x05, 0x00, 0x2c, 0x01, 0x3a}
	if !bytes.Equal(buf, want) {
		t.Fatalf("expected % x, got % x", want, buf)
	}

	got := roundTrip(t, m).(*Msg1)
	if got.F4.ValueName() != "V3" || got.F1.Value() != E1V2 {
		t.Fatalf("unexpected %s", message.Format(got))
	}
}

func TestMsg1UnknownEnumValue(t *testing.T) {
	testlog.Start(t)
	m := NewMsg1()
	m.F1.SetValue(E1(7))
	if message.Valid(m) {
		t.Fatalf("undeclared member must be invalid")
	}
	buf, err := Frame.WriteMessage(m)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	var r recorder
	_, err = Frame.ProcessInputData(buf, &r)
	if !errors.Is(err, protocol.ErrInvalidValue) || protocol.StatusOf(err) != protocol.InvalidValue {
		t.Fatalf("expected InvalidValue, got %v", err)
	}
	if r.specific+r.generic != 0 {
		t.Fatalf("handler must not run for invalid message")
	}
}

func TestMsg2BitOperations(t *testing.T) {
	testlog.Start(t)
	m := NewMsg2()
	m.F2.SetValue(0)
	if !m.F2.SetBitValue("b3", true) {
		t.Fatalf("b3 should be declared")
	}
	if m.F2.Value() != 0x08 {
		t.Fatalf("expected 0x08, got %#x", m.F2.Value())
	}
	m.F2.SetBitValue("b0", true)
	m.F2.SetBitValue("b3", false)
	if m.F2.Value() != 0x01 {
		t.Fatalf("expected 0x01, got %#x", m.F2.Value())
	}
	m.F2.SetBitValue("b3", true)
	m.F3.SetBitValue("fault", true)
	m.F3.SetBit(4, true)

	got := roundTrip(t, m).(*Msg2)
	if on, _ := got.F2.BitValue("b3"); !on || got.F3.Value() != 0x8010 {
		t.Fatalf("unexpected %s", message.Format(got))
	}
}

func TestMsg2ReservedBitRejected(t *testing.T) {
	testlog.Start(t)
	// E | size 05 00 | id 02 | f1 00 | f2 80 | f3 00 00 | sum
	frameBytes := []byte{'E', 0x05, 0x00, 0x02, 0x00, 0x80, 0x00, 0x00, 0x87}
	_, err := Frame.ProcessInputData(frameBytes, &recorder{})
	if !errors.Is(err, protocol.ErrInvalidValue) {
		t.Fatalf("expected InvalidValue for reserved bit, got %v", err)
	}
}

func TestMsg3OptionalDefaults(t *testing.T) {
	testlog.Start(t)
	m := NewMsg3()
	if !m.F3.IsTentative() || message.Length(m) != 3 {
		t.Fatalf("expected f1 + short length only, got %d octets", message.Length(m))
	}
	got := roundTrip(t, m).(*Msg3)
	if !got.F1.DoesExist() || got.F1.Field().Value() != 0x1234 {
		t.Fatalf("f1 should decode with its default, got %s", got.F1.String())
	}
	if !got.F3.IsMissing() {
		t.Fatalf("trailing tentative field with no data should be missing, got %s", got.F3.Mode())
	}
}

func TestMsg3LengthAndTrailingLabel(t *testing.T) {
	testlog.Start(t)
	m := NewMsg3()
	m.F2.SetValue(1000)
	m.F3.SetExists()
	m.F3.Field().SetValue("hi")

	payload := make([]byte, message.Length(m))
	if _, err := message.Write(m, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{0x12, 0x34, 0xff, 0x03, 0xe8, 'h', 'i', 0x00}
	if !bytes.Equal(payload, want) {
		t.Fatalf("expected % x, got % x", want, payload)
	}

	got := roundTrip(t, m).(*Msg3)
	if got.F2.Value() != 1000 || !got.F2.Long.DoesExist() {
		t.Fatalf("expected long length 1000, got %s", got.F2.String())
	}
	if !got.F3.DoesExist() || got.F3.Field().Value() != "hi" {
		t.Fatalf("expected label hi, got %s", got.F3.String())
	}

	m.F2.SetValue(12)
	if m.F2.Long.DoesExist() || m.F2.Length() != 1 {
		t.Fatalf("short length must not carry long")
	}
	short := roundTrip(t, m).(*Msg3)
	if short.F2.Value() != 12 {
		t.Fatalf("expected 12, got %d", short.F2.Value())
	}
}

func TestLengthReadFailureNamesMember(t *testing.T) {
	l := NewLength()
	_, err := l.Read([]byte{0xff, 0x01})
	var fe *protocol.FieldError
	if !errors.As(err, &fe) || fe.Field != "long" || !errors.Is(err, protocol.ErrNotEnoughData) {
		t.Fatalf("expected long NotEnoughData, got %v", err)
	}
}

func TestMsg4StatusAndReading(t *testing.T) {
	testlog.Start(t)
	m := NewMsg4()
	m.F1.Mode.SetValue(ModeRun)
	m.F1.Level.SetValue(20)
	m.F1.Flags.SetBitValue("ack", true)
	m.F1.Flags.SetBitValue("urgent", true)
	if raw, err := m.F1.Raw(); err != nil || raw != 0x81a1 {
		t.Fatalf("expected status 0x81a1, got %#x err=%v", raw, err)
	}
	if m.F2.Which() != "temp" {
		t.Fatalf("expected temp reading by default, got %s", m.F2.String())
	}
	v, _ := m.Reading("value")
	v.(*field.Int[int16]).SetValue(-5)

	buf, err := Frame.WriteMessage(m)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{'E', 0x06, 0x00, 0x04, 0xa1, 0x81, 0x01, 0xff, 0xfb, 0x27}
	if !bytes.Equal(buf, want) {
		t.Fatalf("expected % x, got % x", want, buf)
	}
	got := roundTrip(t, m).(*Msg4)
	if got.F1.Mode.Value() != ModeRun || got.F1.Level.Value() != 20 {
		t.Fatalf("unexpected %s", message.Format(got))
	}
	if on, _ := got.F1.Flags.BitValue("urgent"); !on {
		t.Fatalf("expected urgent flag, got %s", got.F1.String())
	}
}

func TestMsg4ReadingCases(t *testing.T) {
	testlog.Start(t)
	m := NewMsg4()
	m.F2.Select("label")
	text, _ := m.Reading("text")
	text.(*field.String).SetValue("hi")
	payload := make([]byte, message.Length(m))
	if _, err := message.Write(m, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	if want := []byte{0x00, 0x00, 0x02, 0x02, 'h', 'i'}; !bytes.Equal(payload, want) {
		t.Fatalf("expected % x, got % x", want, payload)
	}
	if got := roundTrip(t, m).(*Msg4); got.F2.Which() != "label" {
		t.Fatalf("expected label, got %s", got.F2.String())
	}

	if !m.F2.SetKey(9) {
		t.Fatalf("expected unclaimed key to select raw")
	}
	data, _ := m.Reading("data")
	data.(*field.Data).SetValue([]byte{0xde, 0xad})
	got := roundTrip(t, m).(*Msg4)
	if got.F2.Which() != "raw" || got.F2.Key() != 9 {
		t.Fatalf("expected raw reading with key 9, got %s", got.F2.String())
	}

	clone := m.Clone().(*Msg4)
	cd, _ := clone.Reading("data")
	cd.(*field.Data).SetValue(nil)
	if message.Equal(m, clone) {
		t.Fatalf("clone shares its reading")
	}
}

func TestMsg4RejectsBadStatus(t *testing.T) {
	testlog.Start(t)
	// E | size 06 00 | id 04 | status 02 00 | temp 01 00 00 | sum
	frameBytes := []byte{'E', 0x06, 0x00, 0x04, 0x02, 0x00, 0x01, 0x00, 0x00, 0x0d}
	var r recorder
	_, err := Frame.ProcessInputData(frameBytes, &r)
	if !errors.Is(err, protocol.ErrInvalidValue) {
		t.Fatalf("expected InvalidValue for undeclared mode, got %v", err)
	}
	if r.specific+r.generic != 0 {
		t.Fatalf("handler must not run for invalid message")
	}

	m := NewMsg4()
	m.F1.Level.SetValue(40)
	if message.Valid(m) {
		t.Fatalf("level beyond five bits must be invalid")
	}
	_, err = Frame.WriteMessage(m)
	var fe *protocol.FieldError
	if !errors.Is(err, protocol.ErrInvalidValue) || !errors.As(err, &fe) || fe.Field != "f1.level" {
		t.Fatalf("expected InvalidValue at f1.level, got %v", err)
	}
}

func TestDispatchExclusivity(t *testing.T) {
	testlog.Start(t)
	var stream []byte
	for _, m := range []message.Message{NewMsg1(), NewMsg2(), NewMsg3(), NewMsg1()} {
		buf, err := Frame.WriteMessage(m)
		if err != nil {
			t.Fatalf("write: %v", err)
		}
		stream = append(stream, buf...)
	}
	var r recorder
	if _, err := Frame.ProcessInputData(stream, &r); err != nil {
		t.Fatalf("process: %v", err)
	}
	if r.specific != 2 || r.generic != 2 {
		t.Fatalf("expected 2 specific and 2 catch-all, got %d and %d", r.specific, r.generic)
	}
}

func TestSchemaValidates(t *testing.T) {
	if err := schema.Validate(Schema()); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
