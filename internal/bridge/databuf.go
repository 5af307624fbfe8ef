package bridge

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrOctetRange = errors.New("bridge: octet out of range")

// DataBuf is an immutable sequence of octets.
type DataBuf struct {
	b []byte
}

// NewDataBuf builds a buffer from small integers, each within 0..255.
func NewDataBuf(vals ...int) (DataBuf, error) {
	b := make([]byte, len(vals))
	for i, v := range vals {
		if v < 0 || v > 0xff {
			return DataBuf{}, fmt.Errorf("%w: index %d value %d", ErrOctetRange, i, v)
		}
		b[i] = byte(v)
	}
	return DataBuf{b: b}, nil
}

// DataBufOf copies b.
func DataBufOf(b []byte) DataBuf {
	return DataBuf{b: bytes.Clone(b)}
}

func (d DataBuf) Size() int { return len(d.b) }

// Get returns the octet at i. It panics if i is out of range.
func (d DataBuf) Get(i int) byte { return d.b[i] }

// Bytes returns a copy of the octets.
func (d DataBuf) Bytes() []byte { return bytes.Clone(d.b) }

// Slice returns the octets from i on, sharing storage with d.
func (d DataBuf) Slice(i int) DataBuf { return DataBuf{b: d.b[i:]} }

// Concat returns a new buffer holding d followed by o.
func (d DataBuf) Concat(o DataBuf) DataBuf {
	b := make([]byte, 0, len(d.b)+len(o.b))
	return DataBuf{b: append(append(b, d.b...), o.b...)}
}

func (d DataBuf) Equal(o DataBuf) bool { return bytes.Equal(d.b, o.b) }

func (d DataBuf) String() string { return hex.EncodeToString(d.b) }
