package abi

import (
	"reflect"
	"sync"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/http-boundary/errors"
)

// Safety limits to prevent memory exhaustion from hostile encodings.
const (
	MaxStringSize = 16 << 20 // 16 MB
	MaxListLength = 1 << 20  // 1M elements
	MaxAlloc      = 1 << 30  // 1 GB
)

// CompiledType is the pre-computed layout for a WIT type.
type CompiledType struct {
	Elem     *CompiledType // list element
	Fields   []Field       // record/tuple fields in declaration order
	Cases    []string      // enum case names
	Kind     Kind
	Size     uint32
	Align    uint32
	DiscSize uint32 // enum discriminant size in bytes
}

// Field is one record or tuple member with its memory offset.
type Field struct {
	Type   *CompiledType
	Name   string
	Offset uint32
}

// Compiler compiles WIT type descriptions into CompiledType layouts.
// Compiled results are cached; a Compiler is safe for concurrent use.
type Compiler struct {
	cache map[wit.Type]*CompiledType
	mu    sync.RWMutex
}

func NewCompiler() *Compiler {
	return &Compiler{cache: make(map[wit.Type]*CompiledType)}
}

// Compile resolves the layout of witType. Only the subset of WIT used by
// the HTTP boundary values is supported: u8, u16, u32, string, list,
// tuple, record and enum.
func (c *Compiler) Compile(witType wit.Type) (*CompiledType, error) {
	c.mu.RLock()
	ct, ok := c.cache[witType]
	c.mu.RUnlock()
	if ok {
		return ct, nil
	}

	ct, err := c.compile(witType)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[witType] = ct
	c.mu.Unlock()
	return ct, nil
}

func (c *Compiler) compile(witType wit.Type) (*CompiledType, error) {
	switch t := witType.(type) {
	case wit.U8:
		return &CompiledType{Kind: KindU8, Size: 1, Align: 1}, nil
	case wit.U16:
		return &CompiledType{Kind: KindU16, Size: 2, Align: 2}, nil
	case wit.U32:
		return &CompiledType{Kind: KindU32, Size: 4, Align: 4}, nil
	case wit.String:
		return &CompiledType{Kind: KindString, Size: 8, Align: 4}, nil
	case *wit.TypeDef:
		return c.compileTypeDef(t)
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, "WIT type "+witTypeName(witType))
	}
}

func (c *Compiler) compileTypeDef(td *wit.TypeDef) (*CompiledType, error) {
	switch kind := td.Kind.(type) {
	case *wit.List:
		elem, err := c.Compile(kind.Type)
		if err != nil {
			return nil, err
		}
		return &CompiledType{Kind: KindList, Size: 8, Align: 4, Elem: elem}, nil

	case *wit.Tuple:
		fields := make([]Field, len(kind.Types))
		for i, ft := range kind.Types {
			elem, err := c.Compile(ft)
			if err != nil {
				return nil, err
			}
			fields[i] = Field{Type: elem}
		}
		ct := &CompiledType{Kind: KindTuple, Fields: fields}
		layoutFields(ct)
		return ct, nil

	case *wit.Record:
		fields := make([]Field, len(kind.Fields))
		for i, f := range kind.Fields {
			elem, err := c.Compile(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = Field{Type: elem, Name: f.Name}
		}
		ct := &CompiledType{Kind: KindRecord, Fields: fields}
		layoutFields(ct)
		return ct, nil

	case *wit.Enum:
		if len(kind.Cases) == 0 {
			return nil, errors.InvalidInput(errors.PhaseCompile, "enum with no cases")
		}
		cases := make([]string, len(kind.Cases))
		for i, cs := range kind.Cases {
			cases[i] = cs.Name
		}
		disc := discriminantSize(len(cases))
		return &CompiledType{Kind: KindEnum, Size: disc, Align: disc, DiscSize: disc, Cases: cases}, nil

	default:
		return nil, errors.Unsupported(errors.PhaseCompile, "WIT type kind "+witKindName(td.Kind))
	}
}

// layoutFields assigns canonical ABI offsets: each field aligned to its
// own alignment, total size rounded up to the max alignment.
func layoutFields(ct *CompiledType) {
	var offset, maxAlign uint32
	for i := range ct.Fields {
		ft := ct.Fields[i].Type
		offset = alignTo(offset, ft.Align)
		ct.Fields[i].Offset = offset
		offset += ft.Size
		if ft.Align > maxAlign {
			maxAlign = ft.Align
		}
	}
	if maxAlign == 0 {
		maxAlign = 1
	}
	ct.Size = alignTo(offset, maxAlign)
	ct.Align = maxAlign
}

func discriminantSize(cases int) uint32 {
	switch {
	case cases <= 1<<8:
		return 1
	case cases <= 1<<16:
		return 2
	default:
		return 4
	}
}

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// stride is the distance between consecutive list elements.
func stride(ct *CompiledType) uint32 {
	return alignTo(ct.Size, ct.Align)
}

func witTypeName(t wit.Type) string {
	if t == nil {
		return "<nil>"
	}
	if td, ok := t.(*wit.TypeDef); ok {
		return witKindName(td.Kind)
	}
	return reflect.TypeOf(t).String()
}

func witKindName(k wit.TypeDefKind) string {
	if k == nil {
		return "<nil>"
	}
	return reflect.TypeOf(k).String()
}
