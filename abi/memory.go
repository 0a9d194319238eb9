package abi

import (
	"encoding/binary"

	httpboundary "github.com/wippyai/http-boundary"
	"github.com/wippyai/http-boundary/errors"
)

type Memory = httpboundary.Memory
type Allocator = httpboundary.Allocator

// BufferMemory is an in-process linear memory backed by a growable byte
// slice, with a bump allocator. Encoding into a fresh BufferMemory places
// the root value at offset zero; Bytes then returns a self-contained
// buffer that can be handed across the boundary wholesale.
//
// Not safe for concurrent mutation.
type BufferMemory struct {
	data []byte
}

// NewBufferMemory returns an empty memory ready for encoding.
func NewBufferMemory() *BufferMemory {
	return &BufferMemory{}
}

// NewBufferMemoryFromBytes wraps an encoded buffer for decoding. The
// buffer is not copied.
func NewBufferMemoryFromBytes(buf []byte) *BufferMemory {
	return &BufferMemory{data: buf}
}

// Bytes returns the underlying buffer.
func (m *BufferMemory) Bytes() []byte {
	return m.data
}

// Size returns the current size in bytes.
func (m *BufferMemory) Size() uint32 {
	return uint32(len(m.data))
}

// Alloc reserves size bytes at the next aligned offset, growing the
// buffer. Zero-size allocations return the aligned offset without growth.
func (m *BufferMemory) Alloc(size, align uint32) (uint32, error) {
	if size > MaxAlloc {
		return 0, errors.AllocationFailed(errors.PhaseEncode, size, align)
	}
	if align == 0 {
		align = 1
	}
	off := alignTo(uint32(len(m.data)), align)
	if size == 0 {
		return off, nil
	}
	end := off + size
	if uint64(off)+uint64(size) > uint64(MaxAlloc) {
		return 0, errors.AllocationFailed(errors.PhaseEncode, size, align)
	}
	for uint32(len(m.data)) < end {
		m.data = append(m.data, 0)
	}
	return off, nil
}

// Free is a no-op; the buffer is released as a whole.
func (m *BufferMemory) Free(ptr, size, align uint32) {}

func (m *BufferMemory) bounds(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(len(m.data)) {
		return errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Detail("access at %d+%d past end of buffer (%d bytes)", offset, length, len(m.data)).
			Build()
	}
	return nil
}

func (m *BufferMemory) Read(offset uint32, length uint32) ([]byte, error) {
	if err := m.bounds(offset, length); err != nil {
		return nil, err
	}
	return m.data[offset : offset+length], nil
}

func (m *BufferMemory) Write(offset uint32, data []byte) error {
	if err := m.bounds(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

func (m *BufferMemory) ReadU8(offset uint32) (uint8, error) {
	if err := m.bounds(offset, 1); err != nil {
		return 0, err
	}
	return m.data[offset], nil
}

func (m *BufferMemory) ReadU16(offset uint32) (uint16, error) {
	if err := m.bounds(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.data[offset:]), nil
}

func (m *BufferMemory) ReadU32(offset uint32) (uint32, error) {
	if err := m.bounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.data[offset:]), nil
}

func (m *BufferMemory) ReadU64(offset uint32) (uint64, error) {
	if err := m.bounds(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.data[offset:]), nil
}

func (m *BufferMemory) WriteU8(offset uint32, value uint8) error {
	if err := m.bounds(offset, 1); err != nil {
		return err
	}
	m.data[offset] = value
	return nil
}

func (m *BufferMemory) WriteU16(offset uint32, value uint16) error {
	if err := m.bounds(offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(m.data[offset:], value)
	return nil
}

func (m *BufferMemory) WriteU32(offset uint32, value uint32) error {
	if err := m.bounds(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.data[offset:], value)
	return nil
}

func (m *BufferMemory) WriteU64(offset uint32, value uint64) error {
	if err := m.bounds(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.data[offset:], value)
	return nil
}
