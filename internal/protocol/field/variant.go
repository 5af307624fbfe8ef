package field

import (
	"fmt"

	"github.com/danmuck/commsbind/internal/protocol"
)

// VariantCase is one alternative of a variant. A case with Any set matches
// every key not claimed by another case.
type VariantCase struct {
	Name string
	Key  uint64
	Any  bool
	New  func() Field
}

// VariantDef describes a key selected union. Default indexes the case
// selected on reset; a negative Default leaves the variant empty.
type VariantDef struct {
	Name    string
	Key     Codec
	Cases   []VariantCase
	Default int
}

func (d *VariantDef) caseFor(key uint64) int {
	fallback := -1
	for i, c := range d.Cases {
		if c.Any {
			if fallback < 0 {
				fallback = i
			}
			continue
		}
		if c.Key == key {
			return i
		}
	}
	return fallback
}

func (d *VariantDef) caseNamed(name string) int {
	for i, c := range d.Cases {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Variant holds the key and body of exactly one case, or nothing.
type Variant struct {
	def  *VariantDef
	idx  int
	key  uint64
	body Field
}

func NewVariant(def *VariantDef) Variant {
	v := Variant{def: def}
	v.Reset()
	return v
}

func (f *Variant) Def() *VariantDef { return f.def }
func (f *Variant) Definition() any  { return f.def }
func (f *Variant) Key() uint64      { return f.key }
func (f *Variant) Body() Field      { return f.body }

// Which names the selected case, empty when nothing is selected.
func (f *Variant) Which() string {
	if f.idx < 0 {
		return ""
	}
	return f.def.Cases[f.idx].Name
}

func (f *Variant) selectCase(i int) {
	if i == f.idx && f.body != nil {
		return
	}
	c := f.def.Cases[i]
	f.idx, f.key, f.body = i, c.Key, c.New()
}

// Select switches to the named case with a fresh body. Selecting the
// current case keeps its body.
func (f *Variant) Select(name string) bool {
	i := f.def.caseNamed(name)
	if i < 0 {
		return false
	}
	f.selectCase(i)
	return true
}

// SetKey stores key and switches to the case it selects.
func (f *Variant) SetKey(key uint64) bool {
	i := f.def.caseFor(key)
	if i < 0 || key > f.def.Key.Max() {
		return false
	}
	f.selectCase(i)
	f.key = key
	return true
}

func (f *Variant) Read(buf []byte) (int, error) {
	key, err := f.def.Key.Read(buf)
	if err != nil {
		return 0, err
	}
	i := f.def.caseFor(key)
	if i < 0 {
		return 0, errInvalid(f.def.Name, key)
	}
	f.selectCase(i)
	f.key = key
	n, err := f.body.Read(buf[f.def.Key.Width:])
	if err != nil {
		return 0, protocol.WrapField(f.def.Cases[i].Name, err)
	}
	return f.def.Key.Width + n, nil
}

func (f *Variant) Write(buf []byte) (int, error) {
	if f.body == nil {
		return 0, fmt.Errorf("%w: %s has no case selected", protocol.ErrInvalidValue, f.def.Name)
	}
	if len(buf) < f.Length() {
		return 0, protocol.ErrBufferOverflow
	}
	f.def.Key.Put(buf, f.key)
	n, err := f.body.Write(buf[f.def.Key.Width:])
	if err != nil {
		return 0, protocol.WrapField(f.def.Cases[f.idx].Name, err)
	}
	return f.def.Key.Width + n, nil
}

// Length is zero for an empty variant.
func (f *Variant) Length() int {
	if f.body == nil {
		return 0
	}
	return f.def.Key.Width + f.body.Length()
}

// Valid requires a selected case whose key still maps to it.
func (f *Variant) Valid() bool {
	if f.body == nil || f.key > f.def.Key.Max() {
		return false
	}
	return f.def.caseFor(f.key) == f.idx && f.body.Valid()
}

func (f *Variant) Reset() {
	f.idx, f.key, f.body = -1, 0, nil
	if f.def.Default >= 0 && f.def.Default < len(f.def.Cases) {
		f.selectCase(f.def.Default)
	}
}

func (f *Variant) Clone() Field {
	c := *f
	if f.body != nil {
		c.body = f.body.Clone()
	}
	return &c
}

func (f *Variant) Equal(other Field) bool {
	o, ok := other.(*Variant)
	if !ok || o.idx != f.idx || o.key != f.key {
		return false
	}
	if f.body == nil || o.body == nil {
		return f.body == nil && o.body == nil
	}
	return f.body.Equal(o.body)
}

func (f *Variant) String() string {
	if f.body == nil {
		return "<empty>"
	}
	return fmt.Sprintf("%s(%d)%s", f.Which(), f.key, f.body)
}
