package httpvalue

import (
	"bytes"
	"testing"

	"github.com/wippyai/http-boundary/abi"
)

func wireRoundTrip(t *testing.T, r Response) Response {
	t.Helper()
	buf, err := EncodeResponse(r)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeResponse(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return back
}

func TestWireRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		r    Response
	}{
		{"empty", Response{}},
		{"status only", NewResponse(204, nil, nil)},
		{"text", NewResponse(404,
			[]Header{NewHeaderString("Content-Type", "text/plain")},
			[]byte("not found"))},
		{"binary", NewResponse(200,
			[]Header{NewHeader("X-Test", []byte{0xFF, 0x00, 0x80})},
			[]byte{0x00, 0x01, 0xFE, 0xFF})},
		{"nul body", NewResponse(200, nil, []byte{0x00, 0x00, 0x00})},
		{"duplicate headers", NewResponse(200,
			[]Header{NewHeaderString("A", "1"), NewHeaderString("A", "2")},
			nil)},
		{"max status", NewResponse(65535, nil, nil)},
		{"many headers", NewResponse(200, manyHeaders(100), bytes.Repeat([]byte{0xAB}, 4096))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := wireRoundTrip(t, tt.r)
			if !tt.r.Equal(back) {
				t.Errorf("round trip mismatch:\n in: %s\nout: %s", tt.r, back)
			}
		})
	}
}

func manyHeaders(n int) []Header {
	hs := make([]Header, n)
	for i := range hs {
		hs[i] = NewHeader("X-H", []byte{byte(i), 0x00, byte(i >> 4)})
	}
	return hs
}

func TestWireHeaderOrderPreserved(t *testing.T) {
	r := NewResponse(200, []Header{NewHeaderString("A", "1"), NewHeaderString("A", "2")}, nil)
	back := wireRoundTrip(t, r)
	if len(back.Headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(back.Headers))
	}
	if string(back.Headers[0].Value) != "1" || string(back.Headers[1].Value) != "2" {
		t.Errorf("order not preserved: %v", back.Headers)
	}
}

func TestWireBinarySafety(t *testing.T) {
	h := NewHeader("X-Test", []byte{0xFF, 0x00, 0x80})
	buf, err := EncodeHeader(h)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !h.Equal(back) {
		t.Errorf("header corrupted: %s vs %s", h, back)
	}
	if len(back.Value) != 3 || back.Value[0] != 0xFF || back.Value[1] != 0x00 || back.Value[2] != 0x80 {
		t.Errorf("value bytes = %v, want [255 0 128]", back.Value)
	}
}

func TestWireRootAtOffsetZero(t *testing.T) {
	// Buffer ownership transfers wholesale; the consumer decodes the
	// record from offset zero without a side channel for the address.
	r := NewResponse(200, nil, []byte("x"))
	buf, err := EncodeResponse(r)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	mem := abi.NewBufferMemoryFromBytes(buf)
	back, err := DecodeResponseFrom(mem, 0)
	if err != nil {
		t.Fatalf("decode from 0: %v", err)
	}
	if !r.Equal(back) {
		t.Error("decode at offset zero mismatch")
	}
}

func TestWireIntoSharedMemory(t *testing.T) {
	mem := abi.NewBufferMemory()

	// Reserve a slot first so the record does not land at zero.
	if _, err := mem.Alloc(16, 4); err != nil {
		t.Fatalf("alloc: %v", err)
	}

	r := NewResponse(503,
		[]Header{NewHeader("Retry-After", []byte("1"))},
		[]byte{0xDE, 0xAD})
	addr, err := EncodeResponseInto(r, mem, mem)
	if err != nil {
		t.Fatalf("encode into: %v", err)
	}
	if addr == 0 {
		t.Fatal("record unexpectedly at offset zero")
	}
	back, err := DecodeResponseFrom(mem, addr)
	if err != nil {
		t.Fatalf("decode from %d: %v", addr, err)
	}
	if !r.Equal(back) {
		t.Error("shared memory round trip mismatch")
	}
}

func TestWireDecodeGarbage(t *testing.T) {
	if _, err := DecodeResponse(nil); err == nil {
		t.Error("decoding empty buffer should fail")
	}
	if _, err := DecodeResponse([]byte{1, 2, 3}); err == nil {
		t.Error("decoding truncated buffer should fail")
	}
}
