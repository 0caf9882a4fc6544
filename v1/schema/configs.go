package schema

// Config holds the settings for loading the message type catalog.
//
// Exactly one of DescriptorSet or DescriptorSetPath must be set. The catalog
// is loaded once at construction time; an empty or malformed descriptor set
// is a construction error, not a per-lookup error.
type Config struct {
	// DescriptorSet is a serialized FileDescriptorSet, typically embedded
	// into the binary with go:embed. Takes precedence over
	// DescriptorSetPath when both are set.
	DescriptorSet []byte

	// DescriptorSetPath is a filesystem path to a serialized
	// FileDescriptorSet, as produced by
	// protoc --descriptor_set_out --include_imports.
	DescriptorSetPath string `yaml:"descriptor_set_path" envconfig:"SCHEMA_DESCRIPTOR_SET_PATH"`
}
