package field

import (
	"bytes"
	"encoding/hex"
)

// DataDef describes an opaque octet sequence field.
type DataDef struct {
	Name      string
	Layout    Layout
	Default   []byte
	MaxLength int
}

// Data owns its octets; reads copy out of the input buffer.
type Data struct {
	def   *DataDef
	value []byte
}

func NewData(def *DataDef) Data {
	return Data{def: def, value: def.normalize(def.Default)}
}

// normalize copies v; fixed layouts always hold exactly Size octets.
func (d *DataDef) normalize(v []byte) []byte {
	if d.Layout.Storage != Fixed {
		return bytes.Clone(v)
	}
	out := make([]byte, d.Layout.Size)
	n := copy(out, v)
	for i := n; i < len(out); i++ {
		out[i] = d.Layout.Pad
	}
	return out
}

// Value returns a copy of the stored octets.
func (f *Data) Value() []byte { return bytes.Clone(f.value) }

// SetValue stores a copy of v, padded or truncated for fixed layouts.
func (f *Data) SetValue(v []byte) { f.value = f.def.normalize(v) }

func (f *Data) Size() int { return len(f.value) }

func (f *Data) Definition() any { return f.def }

// Resize grows with zeros or truncates. Fixed layouts keep their size.
func (f *Data) Resize(n int) {
	if f.def.Layout.Storage == Fixed {
		return
	}
	if n <= len(f.value) {
		f.value = f.value[:n]
		return
	}
	f.value = append(f.value, make([]byte, n-len(f.value))...)
}

func (f *Data) Read(buf []byte) (int, error) {
	data, n, err := f.def.Layout.read(buf)
	if err != nil {
		return 0, err
	}
	f.value = bytes.Clone(data)
	return n, nil
}

func (f *Data) Write(buf []byte) (int, error) {
	return f.def.Layout.write(buf, f.value)
}

func (f *Data) Length() int {
	return f.def.Layout.length(len(f.value))
}

func (f *Data) Valid() bool {
	if f.def.MaxLength > 0 && len(f.value) > f.def.MaxLength {
		return false
	}
	return f.def.Layout.fits(len(f.value))
}

func (f *Data) Reset() { f.value = f.def.normalize(f.def.Default) }

func (f *Data) Clone() Field {
	c := *f
	c.value = bytes.Clone(f.value)
	return &c
}

func (f *Data) Equal(other Field) bool {
	o, ok := other.(*Data)
	return ok && bytes.Equal(o.value, f.value)
}

func (f *Data) String() string { return hex.EncodeToString(f.value) }
