package abi

import (
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/http-boundary/errors"
)

// Encoder writes dynamic values into a linear memory according to a
// compiled schema.
type Encoder struct {
	compiler *Compiler
}

func NewEncoder() *Encoder {
	return &Encoder{compiler: NewCompiler()}
}

func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return &Encoder{compiler: c}
}

// Compiler returns the encoder's compiler for schema reuse.
func (e *Encoder) Compiler() *Compiler {
	return e.compiler
}

// Encode allocates space for the value and writes it, returning the root
// address. Into a fresh BufferMemory the root lands at offset zero.
func (e *Encoder) Encode(ct *CompiledType, value any, mem Memory, alloc Allocator) (uint32, error) {
	addr, err := alloc.Alloc(ct.Size, ct.Align)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseEncode, errors.KindAllocation, err, "allocate root value")
	}
	if err := e.EncodeAt(ct, value, addr, mem, alloc); err != nil {
		return 0, err
	}
	return addr, nil
}

// EncodeAt writes the value at a caller-provided address.
func (e *Encoder) EncodeAt(ct *CompiledType, value any, addr uint32, mem Memory, alloc Allocator) error {
	return e.encodeAt(ct, value, addr, mem, alloc, nil)
}

func (e *Encoder) encodeAt(ct *CompiledType, value any, addr uint32, mem Memory, alloc Allocator, path []string) error {
	switch ct.Kind {
	case KindU8:
		v, ok := value.(uint8)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u8")
		}
		return mem.WriteU8(addr, v)

	case KindU16:
		v, ok := value.(uint16)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u16")
		}
		return mem.WriteU16(addr, v)

	case KindU32:
		v, ok := value.(uint32)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u32")
		}
		return mem.WriteU32(addr, v)

	case KindString:
		s, ok := value.(string)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "string")
		}
		if !utf8.ValidString(s) {
			return errors.InvalidUTF8(errors.PhaseEncode, path, []byte(s))
		}
		if len(s) > MaxStringSize {
			return errors.Overflow(errors.PhaseEncode, path, len(s), "string")
		}
		return e.writeBytes(addr, []byte(s), mem, alloc, path)

	case KindList:
		return e.encodeList(ct, value, addr, mem, alloc, path)

	case KindTuple, KindRecord:
		fields, ok := value.([]any)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), ct.Kind.String())
		}
		if len(fields) != len(ct.Fields) {
			return errors.InvalidData(errors.PhaseEncode, path,
				ct.Kind.String()+" arity mismatch: expected "+strconv.Itoa(len(ct.Fields))+", got "+strconv.Itoa(len(fields)))
		}
		for i, f := range ct.Fields {
			if err := e.encodeAt(f.Type, fields[i], addr+f.Offset, mem, alloc, appendPath(path, f, i)); err != nil {
				return err
			}
		}
		return nil

	case KindEnum:
		disc, ok := value.(uint32)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "enum")
		}
		if int(disc) >= len(ct.Cases) {
			return errors.InvalidDiscriminant(errors.PhaseEncode, path, disc, uint32(len(ct.Cases)-1))
		}
		switch ct.DiscSize {
		case 1:
			return mem.WriteU8(addr, uint8(disc))
		case 2:
			return mem.WriteU16(addr, uint16(disc))
		default:
			return mem.WriteU32(addr, disc)
		}

	default:
		return errors.Unsupported(errors.PhaseEncode, "kind "+ct.Kind.String())
	}
}

func (e *Encoder) encodeList(ct *CompiledType, value any, addr uint32, mem Memory, alloc Allocator, path []string) error {
	// list<u8> is opaque binary; bytes are copied verbatim, never
	// through a text codec.
	if ct.Elem.Kind == KindU8 {
		b, ok := value.([]byte)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "list<u8>")
		}
		return e.writeBytes(addr, b, mem, alloc, path)
	}

	elems, ok := value.([]any)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "list")
	}
	if len(elems) > MaxListLength {
		return errors.Overflow(errors.PhaseEncode, path, len(elems), "list")
	}
	if len(elems) == 0 {
		if err := mem.WriteU32(addr, 0); err != nil {
			return err
		}
		return mem.WriteU32(addr+4, 0)
	}

	st := stride(ct.Elem)
	total, ok := safeMulU32(st, uint32(len(elems)))
	if !ok || total > MaxAlloc {
		return errors.Overflow(errors.PhaseEncode, path, len(elems), "list")
	}
	dataPtr, err := alloc.Alloc(total, ct.Elem.Align)
	if err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindAllocation, err, "allocate list data")
	}
	for i, elem := range elems {
		p := append(path, "["+strconv.Itoa(i)+"]")
		if err := e.encodeAt(ct.Elem, elem, dataPtr+uint32(i)*st, mem, alloc, p); err != nil {
			return err
		}
	}
	if err := mem.WriteU32(addr, dataPtr); err != nil {
		return err
	}
	return mem.WriteU32(addr+4, uint32(len(elems)))
}

// writeBytes stores a ptr+len pair at addr with the payload in freshly
// allocated memory. Empty payloads encode as a null pointer.
func (e *Encoder) writeBytes(addr uint32, data []byte, mem Memory, alloc Allocator, path []string) error {
	if len(data) == 0 {
		if err := mem.WriteU32(addr, 0); err != nil {
			return err
		}
		return mem.WriteU32(addr+4, 0)
	}
	if len(data) > MaxAlloc {
		return errors.Overflow(errors.PhaseEncode, path, len(data), "list<u8>")
	}
	dataPtr, err := alloc.Alloc(uint32(len(data)), 1)
	if err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindAllocation, err, "allocate byte payload")
	}
	if err := mem.Write(dataPtr, data); err != nil {
		return err
	}
	if err := mem.WriteU32(addr, dataPtr); err != nil {
		return err
	}
	return mem.WriteU32(addr+4, uint32(len(data)))
}

func appendPath(path []string, f Field, i int) []string {
	if f.Name != "" {
		return append(path, f.Name)
	}
	return append(path, strconv.Itoa(i))
}

func safeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > (1<<32-1)/b {
		return 0, false
	}
	return a * b, true
}

// typeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}
