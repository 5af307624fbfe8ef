package field

import "github.com/danmuck/commsbind/internal/protocol"

// Endian is the octet order of a multi-octet integer.
type Endian uint8

const (
	BigEndian Endian = iota
	LittleEndian
)

func (e Endian) String() string {
	if e == LittleEndian {
		return "little"
	}
	return "big"
}

// Codec serializes raw unsigned integers of 1 to 8 octets.
type Codec struct {
	Width  int
	Endian Endian
}

// Put writes the low Width octets of v into buf. buf must hold Width octets.
func (c Codec) Put(buf []byte, v uint64) {
	for i := 0; i < c.Width; i++ {
		b := byte(v >> (8 * uint(i)))
		if c.Endian == LittleEndian {
			buf[i] = b
		} else {
			buf[c.Width-1-i] = b
		}
	}
}

// Get reads Width octets from buf as an unsigned value.
func (c Codec) Get(buf []byte) uint64 {
	var v uint64
	for i := 0; i < c.Width; i++ {
		var b byte
		if c.Endian == LittleEndian {
			b = buf[i]
		} else {
			b = buf[c.Width-1-i]
		}
		v |= uint64(b) << (8 * uint(i))
	}
	return v
}

func (c Codec) Read(buf []byte) (uint64, error) {
	if len(buf) < c.Width {
		return 0, protocol.ErrNotEnoughData
	}
	return c.Get(buf), nil
}

func (c Codec) Write(buf []byte, v uint64) error {
	if len(buf) < c.Width {
		return protocol.ErrBufferOverflow
	}
	c.Put(buf, v)
	return nil
}

// Max is the largest unsigned value representable in Width octets.
func (c Codec) Max() uint64 {
	if c.Width >= 8 {
		return ^uint64(0)
	}
	return 1<<(8*uint(c.Width)) - 1
}

// signExtend interprets the low Width octets of v as two's complement.
func (c Codec) signExtend(v uint64) uint64 {
	if c.Width >= 8 {
		return v
	}
	shift := 64 - 8*uint(c.Width)
	return uint64(int64(v<<shift) >> shift)
}
