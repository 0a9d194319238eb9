package httpvalue

import (
	"sync"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/http-boundary/abi"
	"github.com/wippyai/http-boundary/errors"
)

// Wire schemas for the boundary encoding. Field layout and order mirror
// the value types exactly and are frozen: changing them breaks every
// guest compiled against the old contract.
//
//	method   = enum { get, post, put, delete, head, options, connect, patch, trace }
//	header   = record { name: string, value: list<u8> }
//	response = record { status: u16, headers: list<tuple<string, list<u8>>>, body: list<u8> }
var (
	byteListWit = &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}

	headerPairWit = &wit.TypeDef{Kind: &wit.Tuple{
		Types: []wit.Type{wit.String{}, byteListWit},
	}}

	headerListWit = &wit.TypeDef{Kind: &wit.List{Type: headerPairWit}}

	methodWit = &wit.TypeDef{Kind: &wit.Enum{Cases: []wit.EnumCase{
		{Name: "get"}, {Name: "post"}, {Name: "put"}, {Name: "delete"},
		{Name: "head"}, {Name: "options"}, {Name: "connect"}, {Name: "patch"},
		{Name: "trace"},
	}}}

	headerWit = &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "name", Type: wit.String{}},
		{Name: "value", Type: byteListWit},
	}}}

	responseWit = &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "status", Type: wit.U16{}},
		{Name: "headers", Type: headerListWit},
		{Name: "body", Type: byteListWit},
	}}}
)

// MethodWitType returns the WIT schema for Method.
func MethodWitType() wit.Type { return methodWit }

// HeaderWitType returns the WIT schema for Header.
func HeaderWitType() wit.Type { return headerWit }

// ResponseWitType returns the WIT schema for Response.
func ResponseWitType() wit.Type { return responseWit }

var (
	wireOnce     sync.Once
	wireCompiler *abi.Compiler
	wireErr      error

	compiledMethod   *abi.CompiledType
	compiledHeader   *abi.CompiledType
	compiledResponse *abi.CompiledType
)

func wireSchemas() (*abi.Compiler, error) {
	wireOnce.Do(func() {
		wireCompiler = abi.NewCompiler()
		if compiledMethod, wireErr = wireCompiler.Compile(methodWit); wireErr != nil {
			return
		}
		if compiledHeader, wireErr = wireCompiler.Compile(headerWit); wireErr != nil {
			return
		}
		compiledResponse, wireErr = wireCompiler.Compile(responseWit)
	})
	return wireCompiler, wireErr
}

// EncodeResponse encodes r into a self-contained boundary buffer with
// the response record at offset zero. Ownership of the buffer transfers
// to the caller.
func EncodeResponse(r Response) ([]byte, error) {
	c, err := wireSchemas()
	if err != nil {
		return nil, err
	}
	mem := abi.NewBufferMemory()
	enc := abi.NewEncoderWithCompiler(c)
	if _, err := enc.Encode(compiledResponse, responseValue(r), mem, mem); err != nil {
		return nil, err
	}
	return mem.Bytes(), nil
}

// DecodeResponse decodes a buffer produced by EncodeResponse (or by a
// guest using the same schema).
func DecodeResponse(buf []byte) (Response, error) {
	c, err := wireSchemas()
	if err != nil {
		return Response{}, err
	}
	mem := abi.NewBufferMemoryFromBytes(buf)
	dec := abi.NewDecoderWithCompiler(c)
	v, err := dec.Decode(compiledResponse, 0, mem)
	if err != nil {
		return Response{}, err
	}
	return responseFromValue(v)
}

// EncodeResponseInto lowers r into an arbitrary linear memory (typically
// guest memory with the guest's allocator) and returns the address of
// the response record.
func EncodeResponseInto(r Response, mem abi.Memory, alloc abi.Allocator) (uint32, error) {
	c, err := wireSchemas()
	if err != nil {
		return 0, err
	}
	enc := abi.NewEncoderWithCompiler(c)
	return enc.Encode(compiledResponse, responseValue(r), mem, alloc)
}

// DecodeResponseFrom lifts a response record rooted at addr out of an
// arbitrary linear memory.
func DecodeResponseFrom(mem abi.Memory, addr uint32) (Response, error) {
	c, err := wireSchemas()
	if err != nil {
		return Response{}, err
	}
	dec := abi.NewDecoderWithCompiler(c)
	v, err := dec.Decode(compiledResponse, addr, mem)
	if err != nil {
		return Response{}, err
	}
	return responseFromValue(v)
}

// EncodeHeader encodes a single header into a self-contained buffer.
func EncodeHeader(h Header) ([]byte, error) {
	c, err := wireSchemas()
	if err != nil {
		return nil, err
	}
	mem := abi.NewBufferMemory()
	enc := abi.NewEncoderWithCompiler(c)
	if _, err := enc.Encode(compiledHeader, []any{h.Name, h.Value}, mem, mem); err != nil {
		return nil, err
	}
	return mem.Bytes(), nil
}

// DecodeHeader decodes a buffer produced by EncodeHeader.
func DecodeHeader(buf []byte) (Header, error) {
	c, err := wireSchemas()
	if err != nil {
		return Header{}, err
	}
	mem := abi.NewBufferMemoryFromBytes(buf)
	dec := abi.NewDecoderWithCompiler(c)
	v, err := dec.Decode(compiledHeader, 0, mem)
	if err != nil {
		return Header{}, err
	}
	fields, ok := v.([]any)
	if !ok || len(fields) != 2 {
		return Header{}, errors.InvalidData(errors.PhaseDecode, []string{"header"}, "malformed header record")
	}
	name, ok1 := fields[0].(string)
	value, ok2 := fields[1].([]byte)
	if !ok1 || !ok2 {
		return Header{}, errors.InvalidData(errors.PhaseDecode, []string{"header"}, "malformed header record")
	}
	return Header{Name: name, Value: value}, nil
}

// responseValue maps a Response to the dynamic value shape the abi
// encoder consumes: records and tuples as []any in field order.
func responseValue(r Response) []any {
	headers := make([]any, len(r.Headers))
	for i, h := range r.Headers {
		value := h.Value
		if value == nil {
			value = []byte{}
		}
		headers[i] = []any{h.Name, value}
	}
	body := r.Body
	if body == nil {
		body = []byte{}
	}
	return []any{r.Status, headers, body}
}

func responseFromValue(v any) (Response, error) {
	malformed := func() (Response, error) {
		return Response{}, errors.InvalidData(errors.PhaseDecode, []string{"response"}, "malformed response record")
	}

	fields, ok := v.([]any)
	if !ok || len(fields) != 3 {
		return malformed()
	}
	status, ok := fields[0].(uint16)
	if !ok {
		return malformed()
	}
	rawHeaders, ok := fields[1].([]any)
	if !ok {
		return malformed()
	}
	body, ok := fields[2].([]byte)
	if !ok {
		return malformed()
	}

	var headers []Header
	if len(rawHeaders) > 0 {
		headers = make([]Header, len(rawHeaders))
		for i, rh := range rawHeaders {
			pair, ok := rh.([]any)
			if !ok || len(pair) != 2 {
				return malformed()
			}
			name, ok1 := pair[0].(string)
			value, ok2 := pair[1].([]byte)
			if !ok1 || !ok2 {
				return malformed()
			}
			headers[i] = Header{Name: name, Value: value}
		}
	}

	return Response{Status: status, Headers: headers, Body: body}, nil
}
