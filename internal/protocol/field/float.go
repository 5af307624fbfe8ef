package field

import (
	"math"
	"strconv"
	"unsafe"

	"github.com/danmuck/commsbind/internal/protocol/units"
)

// FloatDef describes an IEEE 754 field; width follows T.
type FloatDef[T ~float32 | ~float64] struct {
	Name    string
	Endian  Endian
	Default T
	Units   units.Unit
}

func (d *FloatDef[T]) codec() Codec {
	var z T
	return Codec{Width: int(unsafe.Sizeof(z)), Endian: d.Endian}
}

type Float[T ~float32 | ~float64] struct {
	def   *FloatDef[T]
	value T
}

func NewFloat[T ~float32 | ~float64](def *FloatDef[T]) Float[T] {
	return Float[T]{def: def, value: def.Default}
}

func (f *Float[T]) Value() T        { return f.value }
func (f *Float[T]) SetValue(v T)    { f.value = v }
func (f *Float[T]) Definition() any { return f.def }

func (f *Float[T]) ValueAs(u units.Unit) (float64, error) {
	return units.Convert(float64(f.value), f.def.Units, u)
}

func (f *Float[T]) SetValueAs(u units.Unit, v float64) error {
	conv, err := units.Convert(v, u, f.def.Units)
	if err != nil {
		return err
	}
	f.value = T(conv)
	return nil
}

func (f *Float[T]) Read(buf []byte) (int, error) {
	c := f.def.codec()
	raw, err := c.Read(buf)
	if err != nil {
		return 0, err
	}
	if c.Width == 4 {
		f.value = T(math.Float32frombits(uint32(raw)))
	} else {
		f.value = T(math.Float64frombits(raw))
	}
	return c.Width, nil
}

func (f *Float[T]) Write(buf []byte) (int, error) {
	c := f.def.codec()
	var raw uint64
	if c.Width == 4 {
		raw = uint64(math.Float32bits(float32(f.value)))
	} else {
		raw = math.Float64bits(float64(f.value))
	}
	if err := c.Write(buf, raw); err != nil {
		return 0, err
	}
	return c.Width, nil
}

func (f *Float[T]) Length() int  { return f.def.codec().Width }
func (f *Float[T]) Valid() bool  { return true }
func (f *Float[T]) Reset()       { f.value = f.def.Default }
func (f *Float[T]) Clone() Field { c := *f; return &c }

func (f *Float[T]) Equal(other Field) bool {
	o, ok := other.(*Float[T])
	if !ok {
		return false
	}
	if math.IsNaN(float64(f.value)) && math.IsNaN(float64(o.value)) {
		return true
	}
	return o.value == f.value
}

func (f *Float[T]) String() string {
	return strconv.FormatFloat(float64(f.value), 'g', -1, 8*f.def.codec().Width)
}
