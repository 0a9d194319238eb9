// Package host exposes the HTTP fetch capability to sandboxed WASM
// guests as a wazero host module.
//
// The guest encodes a request record into its own linear memory using
// the canonical ABI schema
//
//	request = record {
//	    method:  enum { get, post, ... trace },
//	    url:     string,
//	    headers: list<tuple<string, list<u8>>>,
//	    body:    list<u8>,
//	}
//
// and calls
//
//	fetch(req-ptr: u32, ret-ptr: u32) -> errno: u32
//
// The host performs the call with net/http, adapts the completed native
// response into an httpvalue.Response (waiting for the full body), and
// lowers it into guest memory through the guest's exported cabi_realloc,
// writing the address of the response record to ret-ptr. Transport
// failures are reported through the errno, never retried.
//
// The package logger is a no-op unless configured with SetLogger.
package host
