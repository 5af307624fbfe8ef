package frame

import (
	"github.com/danmuck/commsbind/internal/protocol/checksum"
	"github.com/danmuck/commsbind/internal/protocol/field"
)

// Layer is one stage of a frame chain. The set is closed: Sync, Size, ID,
// Checksum, ChecksumPrefix and Payload.
type Layer interface {
	LayerName() string
	// width is the number of octets the layer adds around its inner layers.
	width() int
}

// Sync verifies and emits a fixed literal.
type Sync struct {
	Name    string
	Literal []byte
}

// Size prefixes the inner layers with their encoded length and confines
// their read to that many octets.
type Size struct {
	Name  string
	Field field.Codec
}

// ID prefixes the payload with the message identifier.
type ID struct {
	Name  string
	Field field.Codec
}

// Checksum appends a checksum after its inner layers. The covered range
// starts at the layer named From, or at the checksum layer itself when
// From is empty, and ends where the checksum begins.
type Checksum struct {
	Name  string
	Field field.Codec
	Alg   checksum.Alg
	From  string
}

// ChecksumPrefix places the checksum ahead of the inner layers it covers.
type ChecksumPrefix struct {
	Name  string
	Field field.Codec
	Alg   checksum.Alg
}

// Payload is the terminal layer holding the message body.
type Payload struct {
	Name string
}

func (l Sync) LayerName() string           { return nameOr(l.Name, "sync") }
func (l Size) LayerName() string           { return nameOr(l.Name, "size") }
func (l ID) LayerName() string             { return nameOr(l.Name, "id") }
func (l Checksum) LayerName() string       { return nameOr(l.Name, "checksum") }
func (l ChecksumPrefix) LayerName() string { return nameOr(l.Name, "checksum") }
func (l Payload) LayerName() string        { return nameOr(l.Name, "payload") }

func (l Sync) width() int           { return len(l.Literal) }
func (l Size) width() int           { return l.Field.Width }
func (l ID) width() int             { return l.Field.Width }
func (l Checksum) width() int       { return l.Field.Width }
func (l ChecksumPrefix) width() int { return l.Field.Width }
func (l Payload) width() int        { return 0 }

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
