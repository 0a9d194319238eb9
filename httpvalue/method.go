package httpvalue

import (
	"net/http"

	"github.com/wippyai/http-boundary/errors"
)

// Method is the closed set of HTTP verbs understood at the boundary.
// The discriminant order is part of the wire contract and must not
// change.
type Method uint8

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodHead
	MethodOptions
	MethodConnect
	MethodPatch
	MethodTrace

	methodCount
)

var methodNatives = [...]string{
	MethodGet:     http.MethodGet,
	MethodPost:    http.MethodPost,
	MethodPut:     http.MethodPut,
	MethodDelete:  http.MethodDelete,
	MethodHead:    http.MethodHead,
	MethodOptions: http.MethodOptions,
	MethodConnect: http.MethodConnect,
	MethodPatch:   http.MethodPatch,
	MethodTrace:   http.MethodTrace,
}

var nativeMethods = func() map[string]Method {
	m := make(map[string]Method, len(methodNatives))
	for disc, name := range methodNatives {
		m[name] = Method(disc)
	}
	return m
}()

// MethodFromNative maps a net/http method string to its Method. The
// mapping is closed over the nine known verbs; anything else fails with
// an invalid_enum error rather than being smuggled through.
func MethodFromNative(native string) (Method, error) {
	m, ok := nativeMethods[native]
	if !ok {
		return 0, errors.InvalidEnum(errors.PhaseAdapt, nil, native, "method")
	}
	return m, nil
}

// MethodFromDiscriminant maps a wire discriminant to its Method.
func MethodFromDiscriminant(disc uint32) (Method, error) {
	if disc >= uint32(methodCount) {
		return 0, errors.InvalidDiscriminant(errors.PhaseDecode, []string{"method"}, disc, uint32(methodCount)-1)
	}
	return Method(disc), nil
}

// ToNative returns the net/http method string. Total over all valid
// variants; an out-of-range Method yields an empty string.
func (m Method) ToNative() string {
	if !m.Valid() {
		return ""
	}
	return methodNatives[m]
}

// Discriminant returns the wire enum discriminant.
func (m Method) Discriminant() uint32 {
	return uint32(m)
}

// Valid reports whether m is one of the nine variants.
func (m Method) Valid() bool {
	return m < methodCount
}

func (m Method) String() string {
	if !m.Valid() {
		return "invalid"
	}
	return methodNatives[m]
}
