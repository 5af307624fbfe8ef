package field

import (
	"fmt"
	"strings"
)

// Bit names one bit position of a bitmask.
type Bit struct {
	Name  string
	Index uint
}

// BitmaskDef describes a bitmask field. Bits outside the declared set are
// reserved: they must be zero unless IgnoreReserved is set.
type BitmaskDef[T Unsigned] struct {
	Name           string
	Codec          Codec
	Default        T
	Bits           []Bit
	IgnoreReserved bool
}

// Mask returns the mask declared for the named bit.
func (d *BitmaskDef[T]) Mask(name string) (T, bool) {
	for _, b := range d.Bits {
		if b.Name == name {
			return T(1) << b.Index, true
		}
	}
	return 0, false
}

// Reserved is the set of undeclared bits within the codec width.
func (d *BitmaskDef[T]) Reserved() T {
	var declared T
	for _, b := range d.Bits {
		declared |= T(1) << b.Index
	}
	return T(d.Codec.Max()) &^ declared
}

func (d *BitmaskDef[T]) reservedClear(v T) bool {
	return d.IgnoreReserved || v&d.Reserved() == 0
}

// Bitmask is an unsigned integer with named bits.
type Bitmask[T Unsigned] struct {
	def   *BitmaskDef[T]
	value T
}

func NewBitmask[T Unsigned](def *BitmaskDef[T]) Bitmask[T] {
	return Bitmask[T]{def: def, value: def.Default}
}

func (f *Bitmask[T]) Def() *BitmaskDef[T] { return f.def }
func (f *Bitmask[T]) Value() T            { return f.value }
func (f *Bitmask[T]) SetValue(v T)        { f.value = v }
func (f *Bitmask[T]) Definition() any     { return f.def }

func (f *Bitmask[T]) Bit(idx uint) bool {
	return f.value&(T(1)<<idx) != 0
}

func (f *Bitmask[T]) SetBit(idx uint, on bool) {
	if on {
		f.value |= T(1) << idx
	} else {
		f.value &^= T(1) << idx
	}
}

// BitValue reads a bit by declared name; ok is false for unknown names.
func (f *Bitmask[T]) BitValue(name string) (on bool, ok bool) {
	mask, ok := f.def.Mask(name)
	if !ok {
		return false, false
	}
	return f.value&mask != 0, true
}

// SetBitValue sets a bit by declared name. Other bits are untouched.
func (f *Bitmask[T]) SetBitValue(name string, on bool) bool {
	mask, ok := f.def.Mask(name)
	if !ok {
		return false
	}
	if on {
		f.value |= mask
	} else {
		f.value &^= mask
	}
	return true
}

func (f *Bitmask[T]) Read(buf []byte) (int, error) {
	raw, err := f.def.Codec.Read(buf)
	if err != nil {
		return 0, err
	}
	f.value = T(raw)
	if !f.def.reservedClear(f.value) {
		return 0, errInvalid(f.def.Name, fmt.Sprintf("%#x", uint64(f.value)))
	}
	return f.def.Codec.Width, nil
}

// Write emits reserved bits as zero unless they are ignorable.
func (f *Bitmask[T]) Write(buf []byte) (int, error) {
	v := f.value
	if !f.def.IgnoreReserved {
		v &^= f.def.Reserved()
	}
	if err := f.def.Codec.Write(buf, uint64(v)); err != nil {
		return 0, err
	}
	return f.def.Codec.Width, nil
}

func (f *Bitmask[T]) Length() int { return f.def.Codec.Width }

func (f *Bitmask[T]) Valid() bool {
	return uint64(f.value) <= f.def.Codec.Max() && f.def.reservedClear(f.value)
}

func (f *Bitmask[T]) Reset()       { f.value = f.def.Default }
func (f *Bitmask[T]) Clone() Field { c := *f; return &c }

func (f *Bitmask[T]) Equal(other Field) bool {
	o, ok := other.(*Bitmask[T])
	return ok && o.value == f.value
}

func (f *Bitmask[T]) String() string {
	var set []string
	for _, b := range f.def.Bits {
		if f.Bit(b.Index) {
			set = append(set, b.Name)
		}
	}
	return fmt.Sprintf("%#x[%s]", uint64(f.value), strings.Join(set, ","))
}
