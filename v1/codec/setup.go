package codec

import (
	"github.com/wireprobe/wireprobe/v1/schema"
)

// Codec translates between textual JSON bodies, dynamic message values, and
// protobuf wire bytes, driven entirely by schemas resolved at runtime.
//
// A Codec holds no mutable state beyond the registry reference and is safe
// for concurrent use.
type Codec struct {
	registry schema.Registry
}

// NewCodec returns a codec backed by the given schema registry.
//
// Example:
//
//	registry, err := schema.NewRegistry(schema.Config{DescriptorSet: descriptorSet})
//	if err != nil {
//	    return err
//	}
//	c := codec.NewCodec(registry)
//	msg, err := c.BuildFromText("Ping", []byte(`{"seq": 5}`))
func NewCodec(registry schema.Registry) *Codec {
	return &Codec{registry: registry}
}
