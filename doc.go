// Package httpboundary defines a canonical, binary-safe value model for
// HTTP responses and headers that cross a sandboxed execution boundary,
// such as a WASM guest calling into a host-provided HTTP capability.
//
// # Architecture Overview
//
// The library is organized into a few packages with distinct
// responsibilities:
//
//	httpboundary/        Root package with core Memory and Allocator interfaces
//	├── httpvalue/       Method, Header and Response value types and encodings
//	├── abi/             Schema-typed canonical ABI value codec
//	├── host/            wazero host module exposing the fetch capability
//	└── errors/          Structured error types for debugging
//
// # Value Model
//
// The three value types are plain immutable values with structural
// equality:
//
//   - Method: a closed enumeration of the nine HTTP verbs with a lossless
//     mapping to net/http method strings.
//   - Header: one header field, name as text and value as an opaque byte
//     sequence that may contain arbitrary non-UTF8 bytes.
//   - Response: status code, ordered header sequence and opaque body.
//
// Each type survives two independent serialization paths without
// divergence: a self-describing JSON form in which byte fields are
// base64, and a compact canonical ABI form keyed by a WIT schema for
// transfer between guest and host.
//
// # Quick Start
//
// Adapt a completed net/http response and move it across the boundary:
//
//	resp, err := httpvalue.ResponseFromNative(nativeResp)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf, err := httpvalue.EncodeResponse(resp)
//	// ... transfer buf wholesale ...
//	decoded, err := httpvalue.DecodeResponse(buf)
//
// # Thread Safety
//
// All value types are immutable after construction and safe to share
// across goroutines without locking. The abi Compiler, Encoder and
// Decoder are safe for concurrent use; BufferMemory is not and must be
// confined to one goroutine while being written.
package httpboundary
