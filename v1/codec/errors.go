package codec

import "errors"

var (
	// ErrUnknownField is returned when a textual body names a field the
	// message schema does not define.
	ErrUnknownField = errors.New("unknown field")

	// ErrTypeMismatch is returned when a textual leaf value has the wrong
	// JSON type for its field kind, or is out of range for the field's
	// integer width.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidBytesEncoding is returned when the textual value for a bytes
	// field is not valid standard base64.
	ErrInvalidBytesEncoding = errors.New("bytes value is not valid base64")

	// ErrUnknownEnumValue is returned when a symbolic enum name does not
	// exist in the field's enum table. Raw integer enum values are accepted
	// unchecked and never produce this error.
	ErrUnknownEnumValue = errors.New("unknown enum value")

	// ErrDecode is returned when wire bytes cannot be parsed against the
	// resolved schema.
	ErrDecode = errors.New("decode failed")

	// ErrUnsupportedKind is returned for field kinds outside the supported
	// set, such as proto2 groups.
	ErrUnsupportedKind = errors.New("unsupported field kind")
)
