package enums

import "github.com/danmuck/commsbind/internal/protocol/field"

var (
	statusCodec = field.Codec{Width: 2, Endian: field.LittleEndian}
	statusMode  = &field.EnumDef[Mode]{Name: "mode", Codec: field.Codec{Width: 1}, Values: modeValues}
	statusLevel = &field.IntDef[uint8]{Name: "level", Codec: field.Codec{Width: 1}, Ranges: []field.Range[uint8]{{Min: 0, Max: 20}}}
	statusFlags = &field.BitmaskDef[uint8]{
		Name:  "flags",
		Codec: field.Codec{Width: 1},
		Bits:  []field.Bit{{Name: "ack", Index: 0}, {Name: "retry", Index: 1}, {Name: "urgent", Index: 7}},
	}
)

// Status is a 16 bit little endian bitfield: mode in bits 0-2, level in
// bits 3-7 and flags in the high octet.
type Status struct {
	Mode  field.Enum[Mode]
	Level field.Int[uint8]
	Flags field.Bitmask[uint8]
}

func NewStatus() Status {
	return Status{
		Mode:  field.NewEnum(statusMode),
		Level: field.NewInt(statusLevel),
		Flags: field.NewBitmask(statusFlags),
	}
}

func (b *Status) members() []field.BitMember {
	return []field.BitMember{
		{Name: "mode", Bits: 3, Field: &b.Mode},
		{Name: "level", Bits: 5, Field: &b.Level},
		{Name: "flags", Bits: 8, Field: &b.Flags},
	}
}

// Raw is the packed value as it appears on the wire.
func (b *Status) Raw() (uint64, error) { return field.PackBits(statusCodec, b.members()) }

func (b *Status) Read(buf []byte) (int, error) {
	return field.ReadBits(buf, statusCodec, b.members())
}

func (b *Status) Write(buf []byte) (int, error) {
	return field.WriteBits(buf, statusCodec, b.members())
}

func (b *Status) Length() int        { return statusCodec.Width }
func (b *Status) Valid() bool        { return field.ValidBits(statusCodec, b.members()) }
func (b *Status) Reset()             { *b = NewStatus() }
func (b *Status) Clone() field.Field { c := *b; return &c }

func (b *Status) Equal(other field.Field) bool {
	o, ok := other.(*Status)
	return ok && o.Mode.Equal(&b.Mode) && o.Level.Equal(&b.Level) && o.Flags.Equal(&b.Flags)
}

func (b *Status) String() string {
	return field.FormatMembers([]field.Member{{Name: "mode", Field: &b.Mode}, {Name: "level", Field: &b.Level}, {Name: "flags", Field: &b.Flags}})
}

var _ field.Field = (*Status)(nil)
