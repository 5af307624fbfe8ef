package field

import "fmt"

// EnumValue is one declared member of an enumeration.
type EnumValue[T Integer] struct {
	Name  string
	Value T
}

// EnumDef describes an enumeration field.
type EnumDef[T Integer] struct {
	Name    string
	Codec   Codec
	Default T
	Values  []EnumValue[T]
}

// NameOf returns the member name declared for v.
func (d *EnumDef[T]) NameOf(v T) (string, bool) {
	for _, ev := range d.Values {
		if ev.Value == v {
			return ev.Name, true
		}
	}
	return "", false
}

// ValueOf returns the member value declared for name.
func (d *EnumDef[T]) ValueOf(name string) (T, bool) {
	for _, ev := range d.Values {
		if ev.Name == name {
			return ev.Value, true
		}
	}
	return 0, false
}

// Enum is an integer restricted to declared members.
type Enum[T Integer] struct {
	def   *EnumDef[T]
	value T
}

func NewEnum[T Integer](def *EnumDef[T]) Enum[T] {
	return Enum[T]{def: def, value: def.Default}
}

func (f *Enum[T]) Def() *EnumDef[T] { return f.def }
func (f *Enum[T]) Value() T         { return f.value }
func (f *Enum[T]) SetValue(v T)     { f.value = v }
func (f *Enum[T]) Definition() any  { return f.def }

// ValueName is the member name of the current value, empty when undeclared.
func (f *Enum[T]) ValueName() string {
	name, _ := f.def.NameOf(f.value)
	return name
}

// SetValueName assigns the member called name.
func (f *Enum[T]) SetValueName(name string) bool {
	v, ok := f.def.ValueOf(name)
	if ok {
		f.value = v
	}
	return ok
}

// Read stores the decoded value even when it is not a declared member.
func (f *Enum[T]) Read(buf []byte) (int, error) {
	raw, err := f.def.Codec.Read(buf)
	if err != nil {
		return 0, err
	}
	if isSigned[T]() {
		f.value = T(int64(f.def.Codec.signExtend(raw)))
	} else {
		f.value = T(raw)
	}
	if !f.Valid() {
		return 0, errInvalid(f.def.Name, f.value)
	}
	return f.def.Codec.Width, nil
}

func (f *Enum[T]) Write(buf []byte) (int, error) {
	if err := f.def.Codec.Write(buf, uint64(f.value)); err != nil {
		return 0, err
	}
	return f.def.Codec.Width, nil
}

func (f *Enum[T]) Length() int { return f.def.Codec.Width }

func (f *Enum[T]) Valid() bool {
	_, ok := f.def.NameOf(f.value)
	return ok
}

func (f *Enum[T]) Reset()       { f.value = f.def.Default }
func (f *Enum[T]) Clone() Field { c := *f; return &c }

func (f *Enum[T]) Equal(other Field) bool {
	o, ok := other.(*Enum[T])
	return ok && o.value == f.value
}

func (f *Enum[T]) String() string {
	if name, ok := f.def.NameOf(f.value); ok {
		return name
	}
	return fmt.Sprintf("%d(?)", int64(f.value))
}
