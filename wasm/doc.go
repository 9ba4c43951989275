// Package wasm provides WebAssembly binary format encoding.
//
// This package encodes WebAssembly core modules according to the
// WebAssembly 2.0 specification, with support for several post-2.0
// proposals in the type system.
//
// # Supported Features
//
//	WebAssembly 2.0:
//	  - Core value types (i32, i64, f32, f64)
//	  - Functions, tables, memories, globals
//	  - Control flow, calls, local/global access
//	  - Memory and table operations
//	  - Import/export of all definitions
//
//	Post-2.0 Proposals (type system only):
//	  - GC (structs, arrays, typed references, heap types)
//	  - Exception handling (tags, try/catch, throw)
//	  - Tail calls (return_call, return_call_indirect)
//	  - SIMD (128-bit vector operations, v128 type)
//	  - Threads (atomic operations, shared memory)
//	  - Bulk memory (memory.copy, memory.fill, data.drop)
//	  - Reference types (funcref, externref, ref.null, ref.is_null)
//	  - Multi-memory (multiple memory instances)
//	  - Memory64 (64-bit memory addressing)
//
// # Building a module
//
// Populate a Module value directly, then encode it to binary:
//
//	mod := wasm.Module{
//	    Types: []wasm.FuncType{{Results: []wasm.ValType{wasm.ValI32}}},
//	    Funcs: []uint32{0},
//	    Code:  []wasm.FuncBody{{Code: instructions}},
//	}
//	encoded := mod.Encode()
//
// # Instructions
//
// Encode instructions to bytecode:
//
//	encoded := wasm.EncodeInstructions(instructions)
//
// Decode instructions back from bytecode (used by the encoder's own
// round-trip tests, and available to callers that need to inspect a
// function body they built themselves):
//
//	instructions, err := wasm.DecodeInstructions(code)
//
// # LEB128 Encoding
//
// The package provides LEB128 utilities used throughout:
//
//	n, err := wasm.ReadLEB128u(r)  // Unsigned
//	n, err := wasm.ReadLEB128s(r)  // Signed
package wasm
