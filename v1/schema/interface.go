package schema

import "google.golang.org/protobuf/reflect/protoreflect"

// Registry resolves message type names to their runtime descriptors.
//
// This interface is implemented by the concrete *DescriptorRegistry type.
// Implementations must be safe for concurrent use; the catalog is read-only
// after construction.
type Registry interface {
	// Resolve returns the descriptor for a message type. The name may be
	// fully qualified ("company.project.v1.Ping") or a bare short name
	// ("Ping"). See DescriptorRegistry.Resolve for the lookup rules.
	Resolve(name string) (protoreflect.MessageDescriptor, error)

	// TypeNames returns the fully qualified names of all message types in
	// the catalog, sorted lexicographically.
	TypeNames() []string
}
