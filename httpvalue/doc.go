// Package httpvalue defines the canonical value types for HTTP data
// crossing the sandbox boundary: Method, Header and Response.
//
// All three are plain immutable values with structural equality and
// hashing. Header values and response bodies are opaque byte sequences:
// they are not assumed to be valid text and every encoding path preserves
// them byte for byte.
//
// Two independent serialization paths reproduce the identical logical
// value:
//
//   - JSON, self-describing, with byte fields as base64.
//   - The compact canonical ABI wire form (EncodeResponse/DecodeResponse
//     and friends), keyed by fixed WIT schemas, for transfer between a
//     sandboxed guest and its host.
//
// A Response is either built manually or adapted from a completed
// net/http response with ResponseFromNative, which drains the full body
// before producing a value. Failures from the native client propagate to
// the caller verbatim; there is no retry and no partial result.
//
// Diagnostic rendering (String) never interprets byte fields as text:
// header values and bodies print as fixed-width hex dumps.
package httpvalue
