package field

import (
	"fmt"
	"math"

	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/protocol/units"
)

// Integer is any fixed size integer, including named enum types.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Unsigned restricts bitmask storage.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

func isSigned[T Integer]() bool {
	var z T
	z--
	return z < 0
}

// Ratio scales a raw integer: scaled = raw * Num / Den. Zero means 1/1.
type Ratio struct {
	Num int64
	Den int64
}

func (r Ratio) factor() float64 {
	if r.Num == 0 || r.Den == 0 {
		return 1
	}
	return float64(r.Num) / float64(r.Den)
}

// Range is an inclusive valid interval.
type Range[T Integer] struct {
	Min T
	Max T
}

// Special names a distinguished value, such as an "unknown" marker.
type Special[T Integer] struct {
	Name  string
	Value T
}

// IntDef describes an integer field.
type IntDef[T Integer] struct {
	Name     string
	Codec    Codec
	Default  T
	Ranges   []Range[T]
	Specials []Special[T]
	Scaling  Ratio
	Units    units.Unit
}

// SpecialName reports the special value name for v, if any.
func (d *IntDef[T]) SpecialName(v T) (string, bool) {
	for _, s := range d.Specials {
		if s.Value == v {
			return s.Name, true
		}
	}
	return "", false
}

func (d *IntDef[T]) fits(v T) bool {
	if d.Codec.Width >= 8 {
		return true
	}
	if isSigned[T]() {
		limit := int64(1) << (8*uint(d.Codec.Width) - 1)
		iv := int64(v)
		return iv >= -limit && iv < limit
	}
	return uint64(v) <= d.Codec.Max()
}

func (d *IntDef[T]) valid(v T) bool {
	if !d.fits(v) {
		return false
	}
	if len(d.Ranges) == 0 {
		return true
	}
	if _, ok := d.SpecialName(v); ok {
		return true
	}
	for _, r := range d.Ranges {
		if v >= r.Min && v <= r.Max {
			return true
		}
	}
	return false
}

func (d *IntDef[T]) decode(buf []byte) (T, error) {
	raw, err := d.Codec.Read(buf)
	if err != nil {
		return 0, err
	}
	if isSigned[T]() {
		raw = d.Codec.signExtend(raw)
		return T(int64(raw)), nil
	}
	return T(raw), nil
}

// Int is a fixed width integer field.
type Int[T Integer] struct {
	def   *IntDef[T]
	value T
}

func NewInt[T Integer](def *IntDef[T]) Int[T] {
	return Int[T]{def: def, value: def.Default}
}

func (f *Int[T]) Def() *IntDef[T] { return f.def }
func (f *Int[T]) Value() T        { return f.value }
func (f *Int[T]) SetValue(v T)    { f.value = v }
func (f *Int[T]) Definition() any { return f.def }

// Scaled applies the declared scaling ratio to the raw value.
func (f *Int[T]) Scaled() float64 {
	return float64(f.value) * f.def.Scaling.factor()
}

// SetScaled stores round(v / ratio) as the raw value.
func (f *Int[T]) SetScaled(v float64) {
	f.value = T(math.Round(v / f.def.Scaling.factor()))
}

// ScaledAs returns the scaled value converted into u.
func (f *Int[T]) ScaledAs(u units.Unit) (float64, error) {
	return units.Convert(f.Scaled(), f.def.Units, u)
}

// SetScaledAs converts v from u into the declared units and stores it.
func (f *Int[T]) SetScaledAs(u units.Unit, v float64) error {
	conv, err := units.Convert(v, u, f.def.Units)
	if err != nil {
		return err
	}
	f.SetScaled(conv)
	return nil
}

// IsSpecial reports whether the value equals the named special.
func (f *Int[T]) IsSpecial(name string) bool {
	for _, s := range f.def.Specials {
		if s.Name == name {
			return s.Value == f.value
		}
	}
	return false
}

// SetSpecial assigns the named special value.
func (f *Int[T]) SetSpecial(name string) bool {
	for _, s := range f.def.Specials {
		if s.Name == name {
			f.value = s.Value
			return true
		}
	}
	return false
}

func (f *Int[T]) Read(buf []byte) (int, error) {
	v, err := f.def.decode(buf)
	if err != nil {
		return 0, err
	}
	f.value = v
	return f.def.Codec.Width, nil
}

func (f *Int[T]) Write(buf []byte) (int, error) {
	if err := f.def.Codec.Write(buf, uint64(f.value)); err != nil {
		return 0, err
	}
	return f.def.Codec.Width, nil
}

func (f *Int[T]) Length() int  { return f.def.Codec.Width }
func (f *Int[T]) Valid() bool  { return f.def.valid(f.value) }
func (f *Int[T]) Reset()       { f.value = f.def.Default }
func (f *Int[T]) Clone() Field { c := *f; return &c }

func (f *Int[T]) Equal(other Field) bool {
	o, ok := other.(*Int[T])
	return ok && o.value == f.value
}

func (f *Int[T]) String() string {
	if name, ok := f.def.SpecialName(f.value); ok {
		return fmt.Sprintf("%d(%s)", f.value, name)
	}
	if f.def.Units != units.None {
		return fmt.Sprintf("%d(%g%s)", f.value, f.Scaled(), f.def.Units)
	}
	return fmt.Sprintf("%d", f.value)
}

var _ Field = (*Int[uint8])(nil)

// errInvalid tags a decoded but invalid value.
func errInvalid(name string, v any) error {
	return fmt.Errorf("%w: %s=%v", protocol.ErrInvalidValue, name, v)
}
