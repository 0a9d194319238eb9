package httpvalue

import (
	"bytes"
	"encoding/binary"
	"hash"
	"hash/fnv"
	"strconv"
)

// Header is one HTTP header field. The name is text as received; the
// value is an opaque byte sequence that may contain non-UTF8 bytes.
// Immutable after construction; no validation of HTTP grammar is
// performed here - a transport that cannot send the field rejects it
// itself.
type Header struct {
	Name  string `json:"name"`
	Value []byte `json:"value"`
}

// NewHeader creates a Header from a name and a raw byte value. Never
// fails.
func NewHeader(name string, value []byte) Header {
	return Header{Name: name, Value: value}
}

// NewHeaderString creates a Header from a name and a text value.
func NewHeaderString(name, value string) Header {
	return Header{Name: name, Value: []byte(value)}
}

// Equal reports structural equality: exact byte comparison on the value,
// no case folding, no trimming. A nil value equals an empty one.
func (h Header) Equal(other Header) bool {
	return h.Name == other.Name && bytes.Equal(h.Value, other.Value)
}

// Hash returns a structural hash over (name, value), consistent with
// Equal.
func (h Header) Hash() uint64 {
	d := fnv.New64a()
	hashLenPrefixed(d, []byte(h.Name))
	hashLenPrefixed(d, h.Value)
	return d.Sum64()
}

func (h Header) String() string {
	return "{name: " + strconv.Quote(h.Name) + ", value: " + hexDump(h.Value) + "}"
}

func hashLenPrefixed(d hash.Hash, data []byte) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(data)))
	d.Write(n[:])
	d.Write(data)
}
