// Package schema loads a compiled protobuf descriptor set and resolves
// message type names to runtime descriptors.
//
// The catalog is read once at construction and is immutable afterwards, so a
// single registry can be shared by any number of concurrent callers without
// locking. Type names resolve either fully qualified or by bare short name;
// the short-name tie-break rule is documented on
// DescriptorRegistry.Resolve.
//
// Compiling a descriptor set for embedding:
//
//	protoc --descriptor_set_out=descriptor.bin --include_imports proto/*.proto
//
// This package deliberately knows nothing about wire payloads or JSON
// bodies; see the codec package for value translation.
package schema
