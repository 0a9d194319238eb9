package httpvalue

import (
	"encoding/json"
	"strings"
	"testing"
)

func jsonRoundTrip(t *testing.T, r Response) Response {
	t.Helper()
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Response
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return back
}

func TestJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		r    Response
	}{
		{"empty", Response{}},
		{"no headers", NewResponse(204, nil, []byte("ok"))},
		{"text", NewResponse(404,
			[]Header{NewHeaderString("Content-Type", "text/plain")},
			[]byte("not found"))},
		{"binary", NewResponse(200,
			[]Header{NewHeader("X-Bin", []byte{0xFF, 0x00, 0x80})},
			[]byte{0x00, 0xFE, 0xFF, 0x00})},
		{"invalid utf8 value", NewResponse(200,
			[]Header{NewHeader("X-Raw", []byte{0xC3, 0x28})},
			[]byte{0x80, 0x81})},
		{"duplicate headers", NewResponse(200,
			[]Header{NewHeaderString("A", "1"), NewHeaderString("A", "2")},
			nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := jsonRoundTrip(t, tt.r)
			if !tt.r.Equal(back) {
				t.Errorf("round trip mismatch:\n in: %s\nout: %s", tt.r, back)
			}
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	r := NewResponse(200, []Header{NewHeaderString("A", "1")}, []byte("x"))
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"status"`, `"headers"`, `"body"`, `"name"`, `"value"`} {
		if !strings.Contains(s, key) {
			t.Errorf("encoding missing field %s: %s", key, s)
		}
	}
}

func TestJSONBytesAreBase64(t *testing.T) {
	// Byte fields must not pass through a text codec: raw 0xFF would be
	// invalid JSON text, base64 keeps it intact.
	r := NewResponse(200, []Header{NewHeader("X", []byte{0xFF})}, []byte{0xFF})
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "\xff") {
		t.Errorf("raw bytes leaked into JSON: %q", data)
	}
	var back Response
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Body) != 1 || back.Body[0] != 0xFF {
		t.Errorf("body corrupted: %v", back.Body)
	}
	if len(back.Headers[0].Value) != 1 || back.Headers[0].Value[0] != 0xFF {
		t.Errorf("header value corrupted: %v", back.Headers[0].Value)
	}
}

func TestJSONHeaderRoundTrip(t *testing.T) {
	h := NewHeader("X-Test", []byte{0xFF, 0x00, 0x80})
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Header
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !h.Equal(back) {
		t.Errorf("round trip mismatch: %s vs %s", h, back)
	}
}
