package httpvalue

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResponseEqualStructural(t *testing.T) {
	headers := []Header{NewHeaderString("A", "1"), NewHeaderString("A", "2")}

	// Same tuple via different construction paths compares equal.
	a := NewResponse(200, headers, []byte("body"))
	b := Response{Status: 200, Headers: []Header{NewHeader("A", []byte("1")), NewHeader("A", []byte("2"))}, Body: []byte("body")}
	if !a.Equal(b) {
		t.Error("same tuple should compare equal regardless of construction path")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal responses must hash equal")
	}

	// Changing any one field breaks equality.
	if a.Equal(NewResponse(201, headers, []byte("body"))) {
		t.Error("status change should break equality")
	}
	if a.Equal(NewResponse(200, headers, []byte("bodY"))) {
		t.Error("body change should break equality")
	}
	reversed := []Header{headers[1], headers[0]}
	if a.Equal(NewResponse(200, reversed, []byte("body"))) {
		t.Error("header order change should break equality")
	}
}

func TestResponseEqualNilEmpty(t *testing.T) {
	if !NewResponse(204, nil, nil).Equal(NewResponse(204, []Header{}, []byte{})) {
		t.Error("nil and empty headers/body should compare equal")
	}
}

func TestResponseDuplicateHeadersPreserved(t *testing.T) {
	r := NewResponse(200, []Header{NewHeaderString("A", "1"), NewHeaderString("A", "2")}, nil)
	if len(r.Headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(r.Headers))
	}
	if string(r.Headers[0].Value) != "1" || string(r.Headers[1].Value) != "2" {
		t.Errorf("duplicate order not preserved: %v", r.Headers)
	}
}

func TestResponseFromNative(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer srv.Close()

	nativeResp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	r, err := ResponseFromNative(nativeResp)
	if err != nil {
		t.Fatalf("ResponseFromNative: %v", err)
	}
	if r.Status != 404 {
		t.Errorf("status = %d, want 404", r.Status)
	}
	if string(r.Body) != "not found" {
		t.Errorf("body = %q", r.Body)
	}

	found := false
	for _, h := range r.Headers {
		if h.Name == "Content-Type" {
			found = true
			if string(h.Value) != "text/plain" {
				t.Errorf("Content-Type = %q", h.Value)
			}
		}
	}
	if !found {
		t.Error("Content-Type header missing")
	}
}

func TestResponseFromNativeDuplicatesAndOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Add("X-Dup", "first")
		w.Header().Add("X-Dup", "second")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	nativeResp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	r, err := ResponseFromNative(nativeResp)
	if err != nil {
		t.Fatalf("ResponseFromNative: %v", err)
	}

	var dups []string
	for _, h := range r.Headers {
		if h.Name == "X-Dup" {
			dups = append(dups, string(h.Value))
		}
	}
	if len(dups) != 2 || dups[0] != "first" || dups[1] != "second" {
		t.Errorf("duplicate headers = %v, want [first second]", dups)
	}

	// Names are sorted for a deterministic mapping.
	var names []string
	for _, h := range r.Headers {
		names = append(names, h.Name)
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Errorf("header names not sorted: %v", names)
			break
		}
	}
}

func TestResponseFromNativeDrainError(t *testing.T) {
	// Declare more body than is sent, so the client hits an unexpected
	// EOF mid-drain.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	nativeResp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	r, err := ResponseFromNative(nativeResp)
	if err == nil {
		t.Fatal("expected drain error, got none")
	}
	if len(r.Body) != 0 || r.Status != 0 {
		t.Errorf("partial result leaked on error: %+v", r)
	}
}

func TestResponseStringHexDump(t *testing.T) {
	r := NewResponse(404,
		[]Header{NewHeaderString("Content-Type", "text/plain")},
		[]byte{0x6e, 0x6f, 0x74})
	s := r.String()
	if !strings.Contains(s, "status: 404") {
		t.Errorf("status not rendered: %s", s)
	}
	if !strings.Contains(s, "6e 6f 74") {
		t.Errorf("body not rendered as hex: %s", s)
	}
	if strings.Contains(s, "not") {
		t.Errorf("body rendered as text: %s", s)
	}
}
