package field

// Mode is the presence tag of an optional field.
type Mode uint8

const (
	Tentative Mode = iota
	Exists
	Missing
)

func (m Mode) String() string {
	switch m {
	case Exists:
		return "exists"
	case Missing:
		return "missing"
	default:
		return "tentative"
	}
}

// OptionalDef describes an optional wrapper.
type OptionalDef struct {
	Name        string
	DefaultMode Mode
}

// Optional wraps a field value of type T whose pointer P implements Field.
type Optional[T any, P interface {
	*T
	Field
}] struct {
	def   *OptionalDef
	mode  Mode
	value T
}

func NewOptional[T any, P interface {
	*T
	Field
}](def *OptionalDef, inner T) Optional[T, P] {
	return Optional[T, P]{def: def, mode: def.DefaultMode, value: inner}
}

// Field returns the wrapped field for in-place access.
func (o *Optional[T, P]) Field() P { return P(&o.value) }

func (o *Optional[T, P]) Mode() Mode        { return o.mode }
func (o *Optional[T, P]) SetMode(m Mode)    { o.mode = m }
func (o *Optional[T, P]) DoesExist() bool   { return o.mode == Exists }
func (o *Optional[T, P]) IsMissing() bool   { return o.mode == Missing }
func (o *Optional[T, P]) IsTentative() bool { return o.mode == Tentative }
func (o *Optional[T, P]) SetExists()        { o.mode = Exists }
func (o *Optional[T, P]) SetMissing()       { o.mode = Missing }
func (o *Optional[T, P]) Definition() any   { return o.def }

// present reports whether the wrapped field is on the wire.
func (o *Optional[T, P]) present() bool {
	switch o.mode {
	case Exists:
		return true
	case Tentative:
		return o.def.DefaultMode == Exists
	default:
		return false
	}
}

// Read treats a tentative field with no remaining input as missing.
func (o *Optional[T, P]) Read(buf []byte) (int, error) {
	switch o.mode {
	case Missing:
		return 0, nil
	case Tentative:
		if len(buf) == 0 {
			o.mode = Missing
			return 0, nil
		}
	}
	n, err := o.Field().Read(buf)
	if err != nil {
		return 0, err
	}
	o.mode = Exists
	return n, nil
}

func (o *Optional[T, P]) Write(buf []byte) (int, error) {
	if !o.present() {
		return 0, nil
	}
	return o.Field().Write(buf)
}

func (o *Optional[T, P]) Length() int {
	if !o.present() {
		return 0
	}
	return o.Field().Length()
}

func (o *Optional[T, P]) Valid() bool {
	if !o.present() {
		return true
	}
	return o.Field().Valid()
}

func (o *Optional[T, P]) Reset() {
	o.mode = o.def.DefaultMode
	o.Field().Reset()
}

func (o *Optional[T, P]) Clone() Field {
	c := *o
	c.value = Copy[T, P](&o.value)
	return &c
}

// Equal compares wire presence and, when present, the wrapped values.
func (o *Optional[T, P]) Equal(other Field) bool {
	x, ok := other.(*Optional[T, P])
	if !ok || x.present() != o.present() {
		return false
	}
	if !o.present() {
		return true
	}
	return o.Field().Equal(x.Field())
}

func (o *Optional[T, P]) String() string {
	if !o.present() {
		return "<" + o.mode.String() + ">"
	}
	return o.Field().String()
}
