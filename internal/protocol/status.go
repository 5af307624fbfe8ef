package protocol

import "errors"

// ErrorStatus is the status value surfaced across the bridge boundary.
type ErrorStatus uint8

const (
	Success ErrorStatus = iota
	NotEnoughData
	BufferOverflow
	InvalidValue
	InvalidSync
	UnsupportedMsgID
	SizeMismatch
	ChecksumFailure
	BadLengthPrefix
	ProtocolError
)

var statusErrors = []struct {
	status ErrorStatus
	err    error
}{
	{NotEnoughData, ErrNotEnoughData},
	{BufferOverflow, ErrBufferOverflow},
	{InvalidValue, ErrInvalidValue},
	{InvalidSync, ErrInvalidSync},
	{UnsupportedMsgID, ErrUnsupportedMsgID},
	{SizeMismatch, ErrSizeMismatch},
	{ChecksumFailure, ErrChecksumFailure},
	{BadLengthPrefix, ErrBadLengthPrefix},
	{ProtocolError, ErrProtocol},
}

// StatusOf maps err onto the taxonomy. Unknown errors are ProtocolError.
func StatusOf(err error) ErrorStatus {
	if err == nil {
		return Success
	}
	for _, se := range statusErrors {
		if errors.Is(err, se.err) {
			return se.status
		}
	}
	return ProtocolError
}

// Err returns the sentinel for s, or nil for Success.
func (s ErrorStatus) Err() error {
	for _, se := range statusErrors {
		if se.status == s {
			return se.err
		}
	}
	return nil
}

func (s ErrorStatus) String() string {
	switch s {
	case Success:
		return "Success"
	case NotEnoughData:
		return "NotEnoughData"
	case BufferOverflow:
		return "BufferOverflow"
	case InvalidValue:
		return "InvalidValue"
	case InvalidSync:
		return "InvalidSync"
	case UnsupportedMsgID:
		return "UnsupportedMsgId"
	case SizeMismatch:
		return "SizeMismatch"
	case ChecksumFailure:
		return "ChecksumFailure"
	case BadLengthPrefix:
		return "BadLengthPrefix"
	case ProtocolError:
		return "ProtocolError"
	default:
		return "Unknown"
	}
}
