package schema

import "errors"

var (
	// ErrNotFound is returned by Resolve when no message type matches the
	// requested name, neither fully qualified nor by short name.
	ErrNotFound = errors.New("message type not found")

	// ErrEmptyDescriptorSet is returned at construction when the descriptor
	// set contains no files. A harness without schemas cannot do anything
	// useful, so this surfaces at startup.
	ErrEmptyDescriptorSet = errors.New("descriptor set is empty")

	// ErrNoDescriptorSource is returned at construction when neither
	// DescriptorSet nor DescriptorSetPath is configured.
	ErrNoDescriptorSource = errors.New("no descriptor set configured")
)
