package field

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/commsbind/internal/protocol"
)

var (
	readingValueDef = &IntDef[int16]{Name: "value", Codec: Codec{Width: 2}}
	readingTextDef  = &StringDef{Name: "text", Layout: Layout{Storage: Prefixed, Prefix: Codec{Width: 1}}}
	readingRawDef   = &DataDef{Name: "data", Layout: Layout{Storage: Remaining}}
)

func readingCases() []VariantCase {
	return []VariantCase{
		{Name: "temp", Key: 1, New: func() Field {
			v := NewInt(readingValueDef)
			b := NewBundle("temp", Member{"value", &v})
			return &b
		}},
		{Name: "label", Key: 2, New: func() Field {
			s := NewString(readingTextDef)
			b := NewBundle("label", Member{"text", &s})
			return &b
		}},
		{Name: "raw", Any: true, New: func() Field {
			d := NewData(readingRawDef)
			b := NewBundle("raw", Member{"data", &d})
			return &b
		}},
	}
}

var readingDef = &VariantDef{Name: "reading", Key: Codec{Width: 1}, Cases: readingCases()}

func bodyMember[T any](t *testing.T, v *Variant, name string) T {
	t.Helper()
	b, ok := v.Body().(*Bundle)
	if !ok {
		t.Fatalf("expected bundle body, got %T", v.Body())
	}
	f, ok := b.Member(name)
	if !ok {
		t.Fatalf("missing member %s", name)
	}
	return f.(T)
}

func TestVariantDefaultCaseRoundTrip(t *testing.T) {
	in := NewVariant(readingDef)
	if in.Which() != "temp" || in.Key() != 1 || in.Length() != 3 {
		t.Fatalf("expected temp default, got %s len=%d", in.String(), in.Length())
	}
	bodyMember[*Int[int16]](t, &in, "value").SetValue(-5)

	buf := make([]byte, in.Length())
	if n, err := in.Write(buf); err != nil || n != 3 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	if !bytes.Equal(buf, []byte{0x01, 0xff, 0xfb}) {
		t.Fatalf("encoded % x", buf)
	}
	out := NewVariant(readingDef)
	if !out.Select("label") {
		t.Fatalf("select label")
	}
	if n, err := out.Read(buf); err != nil || n != 3 {
		t.Fatalf("read: n=%d err=%v", n, err)
	}
	if !in.Equal(&out) {
		t.Fatalf("mismatch: %s vs %s", in.String(), out.String())
	}
}

func TestVariantReadSwitchesCase(t *testing.T) {
	v := NewVariant(readingDef)
	if n, err := v.Read([]byte{0x02, 0x02, 'h', 'i'}); err != nil || n != 4 {
		t.Fatalf("read label: n=%d err=%v", n, err)
	}
	if v.Which() != "label" || bodyMember[*String](t, &v, "text").Value() != "hi" {
		t.Fatalf("expected label hi, got %s", v.String())
	}

	raw := []byte{0x09, 0xaa, 0xbb}
	if n, err := v.Read(raw); err != nil || n != 3 {
		t.Fatalf("read raw: n=%d err=%v", n, err)
	}
	if v.Which() != "raw" || v.Key() != 9 {
		t.Fatalf("expected raw case with key 9, got %s", v.String())
	}
	buf := make([]byte, v.Length())
	if _, err := v.Write(buf); err != nil {
		t.Fatalf("write raw: %v", err)
	}
	if !bytes.Equal(buf, raw) {
		t.Fatalf("expected % x, got % x", raw, buf)
	}
}

func TestVariantRejectsUnknownKeyWithoutCatchAll(t *testing.T) {
	def := &VariantDef{Name: "strict", Key: Codec{Width: 1}, Cases: readingCases()[:2]}
	v := NewVariant(def)
	n, err := v.Read([]byte{0x05, 0x00})
	if n != 0 || !errors.Is(err, protocol.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got n=%d err=%v", n, err)
	}
	if v.SetKey(5) {
		t.Fatalf("expected key 5 to select nothing")
	}
}

func TestVariantBodyErrorCarriesCasePath(t *testing.T) {
	v := NewVariant(readingDef)
	n, err := v.Read([]byte{0x02, 0x05, 'h'})
	if n != 0 || !errors.Is(err, protocol.ErrBadLengthPrefix) {
		t.Fatalf("expected ErrBadLengthPrefix, got n=%d err=%v", n, err)
	}
	var fe *protocol.FieldError
	if !errors.As(err, &fe) || fe.Field != "label.text" {
		t.Fatalf("expected field path label.text, got %v", err)
	}
}

func TestVariantEmptyAndKeyChecks(t *testing.T) {
	def := &VariantDef{Name: "empty", Key: Codec{Width: 1}, Cases: readingCases(), Default: -1}
	v := NewVariant(def)
	if v.Which() != "" || v.Length() != 0 || v.Valid() {
		t.Fatalf("expected empty invalid variant, got %s", v.String())
	}
	if _, err := v.Write(make([]byte, 4)); !errors.Is(err, protocol.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue writing empty variant, got %v", err)
	}

	if !v.SetKey(2) || v.Which() != "label" || !v.Valid() {
		t.Fatalf("expected key 2 to select label, got %s", v.String())
	}
	if !v.SetKey(0x2c) || v.Which() != "raw" {
		t.Fatalf("expected unclaimed key to select raw, got %s", v.String())
	}
	if v.SetKey(0x100) {
		t.Fatalf("expected key beyond the codec to be rejected")
	}
	v.SetKey(2)
	if _, err := v.Write(make([]byte, 1)); !errors.Is(err, protocol.ErrBufferOverflow) {
		t.Fatalf("expected ErrBufferOverflow, got %v", err)
	}
}

func TestVariantCloneIsDeep(t *testing.T) {
	in := NewVariant(readingDef)
	c := in.Clone().(*Variant)
	bodyMember[*Int[int16]](t, c, "value").SetValue(12)
	if in.Equal(c) {
		t.Fatalf("clone shares body")
	}
	c.Reset()
	if !in.Equal(c) {
		t.Fatalf("expected reset clone to match default, got %s", c.String())
	}
}
