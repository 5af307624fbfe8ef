package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrNotEnoughData    = errors.New("protocol: not enough data")
	ErrBufferOverflow   = errors.New("protocol: buffer overflow")
	ErrInvalidValue     = errors.New("protocol: invalid value")
	ErrInvalidSync      = errors.New("protocol: invalid sync")
	ErrUnsupportedMsgID = errors.New("protocol: unsupported message id")
	ErrSizeMismatch     = errors.New("protocol: size mismatch")
	ErrChecksumFailure  = errors.New("protocol: checksum failure")
	ErrBadLengthPrefix  = errors.New("protocol: bad length prefix")
	ErrProtocol         = errors.New("protocol: protocol error")
)

// FieldError reports which field of a message or bundle failed.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// WrapField attaches a field name to err. Nested wraps build a dotted path.
func WrapField(name string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{Field: name + "." + fe.Field, Err: fe.Err}
	}
	return &FieldError{Field: name, Err: err}
}
