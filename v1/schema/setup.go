package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// DescriptorRegistry is an immutable catalog of message type descriptors
// loaded from a compiled FileDescriptorSet.
//
// The catalog is built once in NewRegistry and never mutated afterwards, so
// all methods are safe for concurrent use without locking.
type DescriptorRegistry struct {
	// byFullName maps fully qualified type names to their descriptors.
	byFullName map[string]protoreflect.MessageDescriptor

	// fullNames holds every fully qualified name, sorted lexicographically.
	// Short-name resolution scans this slice, which makes the tie-break rule
	// deterministic: the lexicographically-first match wins.
	fullNames []string
}

// NewRegistry loads the message type catalog from the configured descriptor
// set and returns a registry ready for concurrent use.
//
// The descriptor set is read from Config.DescriptorSet when present,
// otherwise from Config.DescriptorSetPath. A missing source, an unparsable
// set, or a set with no files is an error; callers are expected to treat
// that as fatal at startup.
//
// Example:
//
//	//go:embed descriptor.bin
//	var descriptorSet []byte
//
//	registry, err := schema.NewRegistry(schema.Config{DescriptorSet: descriptorSet})
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewRegistry(cfg Config) (*DescriptorRegistry, error) {
	raw := cfg.DescriptorSet
	if len(raw) == 0 && cfg.DescriptorSetPath != "" {
		var err error
		raw, err = os.ReadFile(cfg.DescriptorSetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read descriptor set from %s: %w", cfg.DescriptorSetPath, err)
		}
	}
	if len(raw) == 0 {
		return nil, ErrNoDescriptorSource
	}

	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(raw, fds); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor set: %w", err)
	}
	if len(fds.GetFile()) == 0 {
		return nil, ErrEmptyDescriptorSet
	}

	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return nil, fmt.Errorf("failed to build file registry: %w", err)
	}

	reg := &DescriptorRegistry{
		byFullName: make(map[string]protoreflect.MessageDescriptor),
	}
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		collectMessages(fd.Messages(), reg.byFullName)
		return true
	})

	reg.fullNames = make([]string, 0, len(reg.byFullName))
	for name := range reg.byFullName {
		reg.fullNames = append(reg.fullNames, name)
	}
	sort.Strings(reg.fullNames)

	return reg, nil
}

// collectMessages indexes all message descriptors, including nested ones.
// Synthetic map entry messages are skipped; they are not addressable types.
func collectMessages(mds protoreflect.MessageDescriptors, out map[string]protoreflect.MessageDescriptor) {
	for i := 0; i < mds.Len(); i++ {
		md := mds.Get(i)
		if md.IsMapEntry() {
			continue
		}
		out[string(md.FullName())] = md
		collectMessages(md.Messages(), out)
	}
}

// Resolve returns the descriptor for the named message type.
//
// Lookup rules:
//  1. An exact fully-qualified match wins.
//  2. Otherwise the name is treated as a short name and matched against the
//     last dot-delimited segment of every catalog entry. When several
//     qualified names share the same short name, the lexicographically-first
//     fully-qualified name is chosen. This tie-break is stable across runs.
//
// A miss returns an error wrapping ErrNotFound.
func (r *DescriptorRegistry) Resolve(name string) (protoreflect.MessageDescriptor, error) {
	if md, ok := r.byFullName[name]; ok {
		return md, nil
	}

	for _, full := range r.fullNames {
		if shortName(full) == name {
			return r.byFullName[full], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// TypeNames returns the fully qualified names of all message types in the
// catalog, sorted lexicographically.
func (r *DescriptorRegistry) TypeNames() []string {
	out := make([]string, len(r.fullNames))
	copy(out, r.fullNames)
	return out
}

// shortName returns the last dot-delimited segment of a qualified name.
func shortName(full string) string {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[i+1:]
	}
	return full
}
