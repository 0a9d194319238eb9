// Package errors provides structured error types for the HTTP boundary
// value model.
//
// Errors carry a Phase (where in processing the failure occurred) and a
// Kind (what category of failure it is), plus an optional field path and
// type names, producing diagnostics such as:
//
//	[encode] type_mismatch at response.headers[2].value: Go type int, WIT type list<u8>
//	[adapt] invalid_enum: invalid enum value "BREW" for method
//
// Construct errors with the convenience functions or the Builder:
//
//	errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
//	    Path("response", "body").
//	    Detail("pointer %d past end of memory", ptr).
//	    Build()
package errors
