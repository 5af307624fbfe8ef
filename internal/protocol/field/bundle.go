package field

import "strings"

// Bundle is a schema-less ordered group of members. Generated bundles are
// plain structs built on the *Sequence helpers instead.
type Bundle struct {
	name    string
	members []Member
}

func NewBundle(name string, members ...Member) Bundle {
	return Bundle{name: name, members: members}
}

func (b *Bundle) Name() string { return b.name }

// Members exposes the live members in declared order.
func (b *Bundle) Members() []Member { return b.members }

// Member returns the live field called name.
func (b *Bundle) Member(name string) (Field, bool) {
	for _, m := range b.members {
		if m.Name == name {
			return m.Field, true
		}
	}
	return nil, false
}

func (b *Bundle) Read(buf []byte) (int, error)  { return ReadSequence(buf, b.members) }
func (b *Bundle) Write(buf []byte) (int, error) { return WriteSequence(buf, b.members) }
func (b *Bundle) Length() int                   { return LengthSequence(b.members) }
func (b *Bundle) Valid() bool                   { return ValidSequence(b.members) }
func (b *Bundle) Reset()                        { ResetSequence(b.members) }

func (b *Bundle) Clone() Field {
	c := Bundle{name: b.name, members: make([]Member, len(b.members))}
	for i, m := range b.members {
		c.members[i] = Member{Name: m.Name, Field: m.Field.Clone()}
	}
	return &c
}

func (b *Bundle) Equal(other Field) bool {
	o, ok := other.(*Bundle)
	return ok && EqualSequence(b.members, o.members)
}

func (b *Bundle) String() string {
	return FormatMembers(b.members)
}

// FormatMembers renders members as {name=value, ...}.
func FormatMembers(members []Member) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.Name)
		sb.WriteByte('=')
		sb.WriteString(m.Field.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
