// Package abi provides schema-typed canonical ABI encoding and decoding
// for boundary values.
//
// Values are encoded against a linear Memory and an Allocator, following
// the Component Model's canonical ABI layout rules:
//
//	Type            Size    Alignment
//	──────────────────────────────────
//	u8              1       1
//	u16             2       2
//	u32             4       4
//	string          8       4 (ptr + len)
//	list<T>         8       4 (ptr + len)
//	tuple/record    sum     max field align
//	enum            1/2/4   1/2/4 (per case count)
//
// The schema is a go.bytecodealliance.org/wit type description compiled
// once into a CompiledType carrying sizes, alignments and field offsets.
// Only the subset of WIT needed by the HTTP boundary values is supported;
// anything else fails at compile time with an unsupported error.
//
// # Encoding Flow
//
//  1. Compiler.Compile(witType) → *CompiledType
//  2. Encoder.Encode(ct, value, mem, alloc) → root address
//
// # Decoding Flow
//
//  1. Compiler.Compile(witType) → *CompiledType
//  2. Decoder.Decode(ct, addr, mem) → value
//
// # Dynamic Values
//
// Values are dynamic: records and tuples are []any in field order, lists
// are []any (or []byte for list<u8>), strings are string, enums are a
// uint32 discriminant. Byte lists are opaque binary and never pass
// through a text codec; strings are validated as UTF-8 in both
// directions.
//
// # Owned Buffers
//
// BufferMemory is an in-process Memory with a bump Allocator. Encoding a
// value into a fresh BufferMemory places the root at offset zero and
// yields a self-contained buffer whose ownership can transfer wholesale
// across the boundary.
//
// # Thread Safety
//
// Compiler and CompiledType are safe for concurrent use. Encoder and
// Decoder are stateless apart from their compiler reference and may be
// shared, but BufferMemory is not safe for concurrent mutation.
package abi
