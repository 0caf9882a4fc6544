// Package codec converts between textual JSON bodies and protobuf wire
// bytes using schemas resolved at runtime, without compile-time generated
// bindings.
//
// The four operations are:
//
//	BuildFromText  JSON document  -> dynamic message
//	Encode         dynamic message -> wire bytes
//	Decode         wire bytes      -> dynamic message
//	ToText         dynamic message -> JSON-shaped map
//
// Supported field kinds: bool, the fixed-width signed and unsigned integers,
// 32/64-bit floats, string, bytes (standard base64 in the textual form),
// enums, nested messages, repeated fields, and maps. Proto2 groups are
// rejected with ErrUnsupportedKind.
//
// Two asymmetries are deliberate and preserved:
//
//   - Enum fields accept a symbolic name or a raw integer on input, but
//     ToText always renders the numeric value. A symbolic name is therefore
//     not round-trip stable.
//   - Only present fields are stored and emitted. Absent fields are never
//     zero-filled in the textual form.
package codec
