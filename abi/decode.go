package abi

import (
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/http-boundary/errors"
)

// Decoder reads dynamic values out of a linear memory according to a
// compiled schema.
type Decoder struct {
	compiler *Compiler
}

func NewDecoder() *Decoder {
	return &Decoder{compiler: NewCompiler()}
}

func NewDecoderWithCompiler(c *Compiler) *Decoder {
	return &Decoder{compiler: c}
}

// Compiler returns the decoder's compiler for schema reuse.
func (d *Decoder) Compiler() *Compiler {
	return d.compiler
}

// Decode reads the value rooted at addr. Byte payloads are copied out of
// the memory, so the result stays valid after the memory is reused.
func (d *Decoder) Decode(ct *CompiledType, addr uint32, mem Memory) (any, error) {
	return d.decodeAt(ct, addr, mem, nil)
}

func (d *Decoder) decodeAt(ct *CompiledType, addr uint32, mem Memory, path []string) (any, error) {
	switch ct.Kind {
	case KindU8:
		return mem.ReadU8(addr)

	case KindU16:
		return mem.ReadU16(addr)

	case KindU32:
		return mem.ReadU32(addr)

	case KindString:
		b, err := d.readBytes(addr, mem, MaxStringSize, path)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, errors.InvalidUTF8(errors.PhaseDecode, path, b)
		}
		return string(b), nil

	case KindList:
		return d.decodeList(ct, addr, mem, path)

	case KindTuple, KindRecord:
		fields := make([]any, len(ct.Fields))
		for i, f := range ct.Fields {
			v, err := d.decodeAt(f.Type, addr+f.Offset, mem, appendPath(path, f, i))
			if err != nil {
				return nil, err
			}
			fields[i] = v
		}
		return fields, nil

	case KindEnum:
		var disc uint32
		switch ct.DiscSize {
		case 1:
			v, err := mem.ReadU8(addr)
			if err != nil {
				return nil, err
			}
			disc = uint32(v)
		case 2:
			v, err := mem.ReadU16(addr)
			if err != nil {
				return nil, err
			}
			disc = uint32(v)
		default:
			v, err := mem.ReadU32(addr)
			if err != nil {
				return nil, err
			}
			disc = v
		}
		if int(disc) >= len(ct.Cases) {
			return nil, errors.InvalidDiscriminant(errors.PhaseDecode, path, disc, uint32(len(ct.Cases)-1))
		}
		return disc, nil

	default:
		return nil, errors.Unsupported(errors.PhaseDecode, "kind "+ct.Kind.String())
	}
}

func (d *Decoder) decodeList(ct *CompiledType, addr uint32, mem Memory, path []string) (any, error) {
	if ct.Elem.Kind == KindU8 {
		return d.readBytes(addr, mem, MaxAlloc, path)
	}

	dataPtr, err := mem.ReadU32(addr)
	if err != nil {
		return nil, err
	}
	length, err := mem.ReadU32(addr + 4)
	if err != nil {
		return nil, err
	}
	if length > MaxListLength {
		return nil, errors.Overflow(errors.PhaseDecode, path, length, "list")
	}
	elems := make([]any, length)
	st := stride(ct.Elem)
	for i := uint32(0); i < length; i++ {
		p := append(path, "["+strconv.FormatUint(uint64(i), 10)+"]")
		v, err := d.decodeAt(ct.Elem, dataPtr+i*st, mem, p)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return elems, nil
}

// readBytes loads a ptr+len pair and copies the payload. A zero length
// yields an empty non-nil slice.
func (d *Decoder) readBytes(addr uint32, mem Memory, limit uint32, path []string) ([]byte, error) {
	dataPtr, err := mem.ReadU32(addr)
	if err != nil {
		return nil, err
	}
	length, err := mem.ReadU32(addr + 4)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return []byte{}, nil
	}
	if length > limit {
		return nil, errors.Overflow(errors.PhaseDecode, path, length, "list<u8>")
	}
	view, err := mem.Read(dataPtr, length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, view)
	return out, nil
}
