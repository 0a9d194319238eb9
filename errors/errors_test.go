package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(PhaseEncode, KindTypeMismatch).
		Path("headers", "[2]", "value").
		GoType("int").
		WitType("list<u8>").
		Build()

	s := err.Error()
	for _, want := range []string{"[encode]", "type_mismatch", "headers.[2].value", "int", "list<u8>"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in %q", want, s)
		}
	}
}

func TestErrorDetailAndCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(PhaseHost, KindTransport, cause, "request failed")
	s := err.Error()
	if !strings.Contains(s, "request failed") || !strings.Contains(s, "boom") {
		t.Errorf("detail or cause missing: %q", s)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should satisfy errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestErrorIs(t *testing.T) {
	a := New(PhaseDecode, KindInvalidUTF8).Detail("one").Build()
	b := New(PhaseDecode, KindInvalidUTF8).Detail("two").Build()
	c := New(PhaseEncode, KindInvalidUTF8).Build()

	if !stderrors.Is(a, b) {
		t.Error("same phase and kind should match")
	}
	if stderrors.Is(a, c) {
		t.Error("different phase should not match")
	}
}

func TestErrorAs(t *testing.T) {
	var target *Error
	wrapped := Wrap(PhaseEncode, KindAllocation, AllocationFailed(PhaseEncode, 16, 4), "outer")
	if !stderrors.As(wrapped, &target) {
		t.Fatal("As should find the structured error")
	}
	if target.Kind != KindAllocation {
		t.Errorf("kind = %v", target.Kind)
	}
}

func TestBuilderDetailFormatting(t *testing.T) {
	err := New(PhaseDecode, KindOutOfBounds).Detail("at %d+%d", 8, 4).Build()
	if !strings.Contains(err.Error(), "at 8+4") {
		t.Errorf("formatted detail missing: %q", err.Error())
	}
}

func TestInvalidUTF8Preview(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = 0xFF
	}
	err := InvalidUTF8(PhaseDecode, nil, data)
	// Preview is capped so a huge payload cannot flood the message.
	if len(err.Error()) > 200 {
		t.Errorf("error message too long: %d bytes", len(err.Error()))
	}
	if err.Kind != KindInvalidUTF8 {
		t.Errorf("kind = %v", err.Kind)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
	}{
		{TypeMismatch(PhaseEncode, nil, "int", "u8"), KindTypeMismatch},
		{InvalidDiscriminant(PhaseDecode, nil, 9, 8), KindInvalidEnum},
		{Unsupported(PhaseCompile, "variant"), KindUnsupported},
		{OutOfBounds(PhaseDecode, nil, 5, 3), KindOutOfBounds},
		{Overflow(PhaseEncode, nil, 1 << 30, "list"), KindOverflow},
		{InvalidData(PhaseDecode, nil, "bad record"), KindInvalidData},
		{InvalidInput(PhaseCompile, "empty enum"), KindInvalidInput},
		{Transport(PhaseHost, stderrors.New("refused"), "dial"), KindTransport},
	}
	for _, tt := range tests {
		if tt.err.Kind != tt.kind {
			t.Errorf("%v: kind = %v, want %v", tt.err, tt.err.Kind, tt.kind)
		}
		if tt.err.Error() == "" {
			t.Errorf("empty message for kind %v", tt.kind)
		}
	}
}
