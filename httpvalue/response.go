package httpvalue

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Response is a full HTTP response as a plain value: status code, the
// header fields in order, and the complete body. Headers keep duplicates
// as separate entries; the body is opaque bytes with no charset or
// content-type interpretation.
type Response struct {
	Headers []Header `json:"headers"`
	Body    []byte   `json:"body"`
	Status  uint16   `json:"status"`
}

// NewResponse constructs a Response directly, for callers not going
// through a live HTTP client. Never fails and never validates.
func NewResponse(status uint16, headers []Header, body []byte) Response {
	return Response{Status: status, Headers: headers, Body: body}
}

// ResponseFromNative consumes a completed net/http response, draining
// the full body before producing a value. The call blocks until the body
// stream is exhausted; a failure while draining is returned verbatim
// with no partial result. Cancellation is governed by the context of the
// request that produced resp, as with any net/http body read.
//
// net/http exposes no order across distinct header names (http.Header is
// a map), so names are sorted for a deterministic mapping; the received
// order of values within one name is preserved, and repeated fields stay
// separate entries.
func ResponseFromNative(resp *http.Response) (Response, error) {
	body, err := io.ReadAll(resp.Body)
	// Close error is intentionally ignored after full body read
	_ = resp.Body.Close()
	if err != nil {
		return Response{}, err
	}

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	var headers []Header
	for _, name := range names {
		for _, value := range resp.Header[name] {
			headers = append(headers, NewHeaderString(name, value))
		}
	}

	return Response{
		Status:  uint16(resp.StatusCode),
		Headers: headers,
		Body:    body,
	}, nil
}

// Equal reports structural equality over (status, headers, body),
// including header order. Nil and empty byte slices compare equal.
func (r Response) Equal(other Response) bool {
	if r.Status != other.Status || len(r.Headers) != len(other.Headers) {
		return false
	}
	for i, h := range r.Headers {
		if !h.Equal(other.Headers[i]) {
			return false
		}
	}
	return bytes.Equal(r.Body, other.Body)
}

// Hash returns a structural hash over (status, headers, body),
// consistent with Equal.
func (r Response) Hash() uint64 {
	d := fnv.New64a()
	var s [2]byte
	binary.LittleEndian.PutUint16(s[:], r.Status)
	d.Write(s[:])
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(r.Headers)))
	d.Write(n[:])
	for _, h := range r.Headers {
		hashLenPrefixed(d, []byte(h.Name))
		hashLenPrefixed(d, h.Value)
	}
	hashLenPrefixed(d, r.Body)
	return d.Sum64()
}

func (r Response) String() string {
	var b strings.Builder
	b.WriteString("Response{status: ")
	b.WriteString(strconv.Itoa(int(r.Status)))
	b.WriteString(", headers: [")
	for i, h := range r.Headers {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(h.String())
	}
	b.WriteString("], body: ")
	b.WriteString(hexDump(r.Body))
	b.WriteString("}")
	return b.String()
}
