package field

import (
	"fmt"

	"github.com/danmuck/commsbind/internal/protocol"
)

// Packable is a field kind that can occupy a bit range of a bitfield.
// Int, Enum and Bitmask qualify.
type Packable interface {
	Field
	pack(bits uint) (uint64, bool)
	unpack(raw uint64, bits uint) error
}

// BitMember is one member of a bitfield. Members are packed least
// significant first.
type BitMember struct {
	Name  string
	Bits  uint
	Field Packable
}

func maskBits(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

func toBits[T Integer](v T, bits uint) (uint64, bool) {
	if !isSigned[T]() {
		u := uint64(v)
		return u, u <= maskBits(bits)
	}
	iv := int64(v)
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if iv < -limit || iv >= limit {
			return 0, false
		}
	}
	return uint64(iv) & maskBits(bits), true
}

func fromBits[T Integer](raw uint64, bits uint) T {
	raw &= maskBits(bits)
	if isSigned[T]() && bits < 64 && raw&(1<<(bits-1)) != 0 {
		raw |= ^maskBits(bits)
	}
	return T(int64(raw))
}

func (f *Int[T]) pack(bits uint) (uint64, bool) { return toBits(f.value, bits) }

func (f *Int[T]) unpack(raw uint64, bits uint) error {
	f.value = fromBits[T](raw, bits)
	return nil
}

func (f *Enum[T]) pack(bits uint) (uint64, bool) { return toBits(f.value, bits) }

func (f *Enum[T]) unpack(raw uint64, bits uint) error {
	f.value = fromBits[T](raw, bits)
	if !f.Valid() {
		return errInvalid(f.def.Name, f.value)
	}
	return nil
}

func (f *Bitmask[T]) pack(bits uint) (uint64, bool) {
	v := f.value
	if !f.def.IgnoreReserved {
		v &^= f.def.Reserved()
	}
	return toBits(v, bits)
}

func (f *Bitmask[T]) unpack(raw uint64, bits uint) error {
	f.value = fromBits[T](raw, bits)
	if !f.def.reservedClear(f.value) {
		return errInvalid(f.def.Name, fmt.Sprintf("%#x", uint64(f.value)))
	}
	return nil
}

// CheckBits reports a layout error unless every member has at least one
// bit and the members together fill the codec exactly.
func CheckBits(c Codec, members []BitMember) error {
	var total uint
	for _, m := range members {
		if m.Bits == 0 {
			return fmt.Errorf("%w: bitfield member %s has no bits", protocol.ErrProtocol, m.Name)
		}
		total += m.Bits
	}
	if total != 8*uint(c.Width) {
		return fmt.Errorf("%w: bitfield members span %d bits, codec holds %d", protocol.ErrProtocol, total, 8*c.Width)
	}
	return nil
}

// PackBits combines the member values into one raw integer.
func PackBits(c Codec, members []BitMember) (uint64, error) {
	if err := CheckBits(c, members); err != nil {
		return 0, err
	}
	var raw uint64
	var shift uint
	for _, m := range members {
		v, ok := m.Field.pack(m.Bits)
		if !ok {
			err := fmt.Errorf("%w: %s does not fit %d bits", protocol.ErrInvalidValue, m.Field, m.Bits)
			return 0, protocol.WrapField(m.Name, err)
		}
		raw |= v << shift
		shift += m.Bits
	}
	return raw, nil
}

// ReadBits decodes one codec wide integer and splits it across members.
func ReadBits(buf []byte, c Codec, members []BitMember) (int, error) {
	if err := CheckBits(c, members); err != nil {
		return 0, err
	}
	raw, err := c.Read(buf)
	if err != nil {
		return 0, err
	}
	var shift uint
	for _, m := range members {
		if err := m.Field.unpack(raw>>shift, m.Bits); err != nil {
			return 0, protocol.WrapField(m.Name, err)
		}
		shift += m.Bits
	}
	return c.Width, nil
}

func WriteBits(buf []byte, c Codec, members []BitMember) (int, error) {
	raw, err := PackBits(c, members)
	if err != nil {
		return 0, err
	}
	if err := c.Write(buf, raw); err != nil {
		return 0, err
	}
	return c.Width, nil
}

// ValidBits requires a sound layout, values that fit their bit ranges and
// members that are valid on their own.
func ValidBits(c Codec, members []BitMember) bool {
	if _, err := PackBits(c, members); err != nil {
		return false
	}
	for _, m := range members {
		if !m.Field.Valid() {
			return false
		}
	}
	return true
}

func bitSequence(members []BitMember) []Member {
	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = Member{Name: m.Name, Field: m.Field}
	}
	return out
}

// Bitfield is a schema-less bitfield, the packed counterpart of Bundle.
type Bitfield struct {
	name    string
	codec   Codec
	members []BitMember
}

func NewBitfield(name string, c Codec, members ...BitMember) Bitfield {
	return Bitfield{name: name, codec: c, members: members}
}

func (b *Bitfield) Name() string         { return b.name }
func (b *Bitfield) Members() []BitMember { return b.members }
func (b *Bitfield) Raw() (uint64, error) { return PackBits(b.codec, b.members) }
func (b *Bitfield) Length() int          { return b.codec.Width }
func (b *Bitfield) Valid() bool          { return ValidBits(b.codec, b.members) }
func (b *Bitfield) Reset()               { ResetSequence(bitSequence(b.members)) }
func (b *Bitfield) String() string       { return FormatMembers(bitSequence(b.members)) }

func (b *Bitfield) Read(buf []byte) (int, error) {
	return ReadBits(buf, b.codec, b.members)
}

func (b *Bitfield) Write(buf []byte) (int, error) {
	return WriteBits(buf, b.codec, b.members)
}

// Member returns the live field called name.
func (b *Bitfield) Member(name string) (Packable, bool) {
	for _, m := range b.members {
		if m.Name == name {
			return m.Field, true
		}
	}
	return nil, false
}

func (b *Bitfield) Clone() Field {
	c := Bitfield{name: b.name, codec: b.codec, members: make([]BitMember, len(b.members))}
	for i, m := range b.members {
		c.members[i] = BitMember{Name: m.Name, Bits: m.Bits, Field: m.Field.Clone().(Packable)}
	}
	return &c
}

func (b *Bitfield) Equal(other Field) bool {
	o, ok := other.(*Bitfield)
	return ok && EqualSequence(bitSequence(b.members), bitSequence(o.members))
}
