package protocol

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusOfMapsWrappedSentinels(t *testing.T) {
	err := fmt.Errorf("frame Frame: %w", WrapField("f1", ErrNotEnoughData))
	if got := StatusOf(err); got != NotEnoughData {
		t.Fatalf("expected NotEnoughData, got %s", got)
	}
	if got := StatusOf(nil); got != Success {
		t.Fatalf("expected Success, got %s", got)
	}
	if got := StatusOf(errors.New("boom")); got != ProtocolError {
		t.Fatalf("expected ProtocolError, got %s", got)
	}
}

func TestErrorStatusErrRoundTrip(t *testing.T) {
	for s := NotEnoughData; s <= ProtocolError; s++ {
		if got := StatusOf(s.Err()); got != s {
			t.Fatalf("status %s mapped back to %s", s, got)
		}
	}
	if Success.Err() != nil {
		t.Fatalf("expected nil error for Success")
	}
}

func TestWrapFieldBuildsPath(t *testing.T) {
	err := WrapField("outer", WrapField("inner", ErrInvalidValue))
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Field != "outer.inner" {
		t.Fatalf("expected path outer.inner, got %q", fe.Field)
	}
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue in chain")
	}
	if WrapField("x", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
