package enums

import (
	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/field"
)

const lengthEscape = 0xff

var (
	lengthShort   = &field.IntDef[uint8]{Name: "short", Codec: field.Codec{Width: 1}}
	lengthLong    = &field.IntDef[uint16]{Name: "long", Codec: field.Codec{Width: 2}, Ranges: []field.Range[uint16]{{Min: lengthEscape, Max: 0xffff}}}
	lengthLongOpt = &field.OptionalDef{Name: "long", DefaultMode: field.Missing}
)

type lengthLongField = field.Optional[field.Int[uint16], *field.Int[uint16]]

// Length is a bundle encoding small values in one octet and larger values
// as 0xff followed by a 16 bit value. Long exists iff Short is 0xff.
type Length struct {
	Short field.Int[uint8]
	Long  lengthLongField
}

func NewLength() Length {
	return Length{
		Short: field.NewInt(lengthShort),
		Long:  field.NewOptional[field.Int[uint16], *field.Int[uint16]](lengthLongOpt, field.NewInt(lengthLong)),
	}
}

func (b *Length) Value() uint16 {
	if b.Short.Value() == lengthEscape {
		return b.Long.Field().Value()
	}
	return uint16(b.Short.Value())
}

func (b *Length) SetValue(v uint16) {
	if v < lengthEscape {
		b.Short.SetValue(uint8(v))
		b.Long.SetMissing()
		return
	}
	b.Short.SetValue(lengthEscape)
	b.Long.SetExists()
	b.Long.Field().SetValue(v)
}

// refresh aligns the presence of Long with Short.
func (b *Length) refresh() {
	if b.Short.Value() == lengthEscape {
		b.Long.SetExists()
	} else {
		b.Long.SetMissing()
	}
}

func (b *Length) members() []field.Member {
	return []field.Member{{Name: "short", Field: &b.Short}, {Name: "long", Field: &b.Long}}
}

func (b *Length) Read(buf []byte) (int, error) {
	n, err := b.Short.Read(buf)
	if err != nil {
		return 0, protocol.WrapField("short", err)
	}
	b.refresh()
	m, err := b.Long.Read(buf[n:])
	if err != nil {
		return 0, protocol.WrapField("long", err)
	}
	return n + m, nil
}

func (b *Length) Write(buf []byte) (int, error) {
	b.refresh()
	return field.WriteSequence(buf, b.members())
}

func (b *Length) Length() int {
	if b.Short.Value() == lengthEscape {
		return b.Short.Length() + b.Long.Field().Length()
	}
	return b.Short.Length()
}

func (b *Length) Valid() bool {
	if b.Short.Value() == lengthEscape {
		return b.Long.Field().Valid()
	}
	return b.Short.Valid()
}

func (b *Length) Reset() { field.ResetSequence(b.members()) }

func (b *Length) Clone() field.Field { c := *b; return &c }

func (b *Length) Equal(other field.Field) bool {
	o, ok := other.(*Length)
	return ok && o.Value() == b.Value() && (o.Short.Value() == lengthEscape) == (b.Short.Value() == lengthEscape)
}

func (b *Length) String() string { return field.FormatMembers(b.members()) }

var _ field.Field = (*Length)(nil)
