package field

import (
	"bytes"
	"strconv"
	"strings"
)

// StringDef describes a string field. MaxLength of zero means unbounded.
type StringDef struct {
	Name      string
	Layout    Layout
	Default   string
	MaxLength int
}

type String struct {
	def   *StringDef
	value string
}

func NewString(def *StringDef) String {
	return String{def: def, value: def.Default}
}

func (f *String) Value() string     { return f.value }
func (f *String) SetValue(v string) { f.value = v }
func (f *String) Definition() any   { return f.def }

func (f *String) Read(buf []byte) (int, error) {
	data, n, err := f.def.Layout.read(buf)
	if err != nil {
		return 0, err
	}
	if f.def.Layout.Storage == Fixed {
		if idx := bytes.IndexByte(data, 0); idx >= 0 {
			data = data[:idx]
		}
		if pad := f.def.Layout.Pad; pad != 0 {
			data = bytes.TrimRight(data, string([]byte{pad}))
		}
	}
	f.value = string(data)
	return n, nil
}

func (f *String) Write(buf []byte) (int, error) {
	return f.def.Layout.write(buf, []byte(f.value))
}

func (f *String) Length() int {
	return f.def.Layout.length(len(f.value))
}

func (f *String) Valid() bool {
	if f.def.MaxLength > 0 && len(f.value) > f.def.MaxLength {
		return false
	}
	if f.def.Layout.Storage == ZeroTerm && strings.IndexByte(f.value, 0) >= 0 {
		return false
	}
	return f.def.Layout.fits(len(f.value))
}

func (f *String) Reset()       { f.value = f.def.Default }
func (f *String) Clone() Field { c := *f; return &c }

func (f *String) Equal(other Field) bool {
	o, ok := other.(*String)
	return ok && o.value == f.value
}

func (f *String) String() string { return strconv.Quote(f.value) }
