package httpvalue

import (
	"net/http"
	"testing"
)

var allMethods = []Method{
	MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead,
	MethodOptions, MethodConnect, MethodPatch, MethodTrace,
}

func TestMethodBijection(t *testing.T) {
	for _, m := range allMethods {
		native := m.ToNative()
		if native == "" {
			t.Fatalf("method %d has no native form", m)
		}
		back, err := MethodFromNative(native)
		if err != nil {
			t.Fatalf("MethodFromNative(%q): %v", native, err)
		}
		if back != m {
			t.Errorf("round trip of %v: got %v", m, back)
		}
		if back.ToNative() != native {
			t.Errorf("to_native(from_native(%q)) = %q", native, back.ToNative())
		}
	}
}

func TestMethodNativeValues(t *testing.T) {
	tests := []struct {
		method Method
		native string
	}{
		{MethodGet, http.MethodGet},
		{MethodPost, http.MethodPost},
		{MethodPut, http.MethodPut},
		{MethodDelete, http.MethodDelete},
		{MethodHead, http.MethodHead},
		{MethodOptions, http.MethodOptions},
		{MethodConnect, http.MethodConnect},
		{MethodPatch, http.MethodPatch},
		{MethodTrace, http.MethodTrace},
	}
	for _, tt := range tests {
		if got := tt.method.ToNative(); got != tt.native {
			t.Errorf("%v.ToNative() = %q, want %q", tt.method, got, tt.native)
		}
	}
}

func TestMethodFromNativeUnknown(t *testing.T) {
	for _, verb := range []string{"", "get", "BREW", "PROPFIND", "GET "} {
		if _, err := MethodFromNative(verb); err == nil {
			t.Errorf("MethodFromNative(%q) should fail", verb)
		}
	}
}

func TestMethodDiscriminants(t *testing.T) {
	// Wire contract: discriminants are frozen in declaration order.
	for want, m := range allMethods {
		if m.Discriminant() != uint32(want) {
			t.Errorf("%v discriminant = %d, want %d", m, m.Discriminant(), want)
		}
		back, err := MethodFromDiscriminant(uint32(want))
		if err != nil {
			t.Fatalf("MethodFromDiscriminant(%d): %v", want, err)
		}
		if back != m {
			t.Errorf("MethodFromDiscriminant(%d) = %v, want %v", want, back, m)
		}
	}
	if _, err := MethodFromDiscriminant(9); err == nil {
		t.Error("discriminant 9 should be rejected")
	}
	if _, err := MethodFromDiscriminant(1 << 20); err == nil {
		t.Error("large discriminant should be rejected")
	}
}

func TestMethodString(t *testing.T) {
	if s := MethodPatch.String(); s != "PATCH" {
		t.Errorf("String() = %q", s)
	}
	if s := Method(42).String(); s != "invalid" {
		t.Errorf("invalid method String() = %q", s)
	}
}
