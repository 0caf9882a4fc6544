package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// populateMessage sets every field named in obj on the message. Unknown
// field names are an error; fields not named stay absent.
func populateMessage(m protoreflect.Message, obj map[string]interface{}) error {
	md := m.Descriptor()
	for key, raw := range obj {
		fd := md.Fields().ByName(protoreflect.Name(key))
		if fd == nil {
			return fmt.Errorf("%w: %q on %s", ErrUnknownField, key, md.FullName())
		}
		if err := setField(m, fd, raw); err != nil {
			return err
		}
	}
	return nil
}

// setField converts a textual value according to the field's kind and sets
// it on the message, recursing element-wise for repeated and map fields.
func setField(m protoreflect.Message, fd protoreflect.FieldDescriptor, raw interface{}) error {
	switch {
	case fd.IsMap():
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%w: field %s expects an object", ErrTypeMismatch, fd.FullName())
		}
		mp := m.Mutable(fd).Map()
		for k, v := range obj {
			mk, err := mapKey(fd.MapKey(), k)
			if err != nil {
				return err
			}
			mv, err := singularValue(fd.MapValue(), v)
			if err != nil {
				return err
			}
			mp.Set(mk, mv)
		}
		return nil

	case fd.IsList():
		elems, ok := raw.([]interface{})
		if !ok {
			return fmt.Errorf("%w: field %s expects an array", ErrTypeMismatch, fd.FullName())
		}
		list := m.Mutable(fd).List()
		for _, elem := range elems {
			v, err := singularValue(fd, elem)
			if err != nil {
				return err
			}
			list.Append(v)
		}
		return nil

	default:
		v, err := singularValue(fd, raw)
		if err != nil {
			return err
		}
		m.Set(fd, v)
		return nil
	}
}

// singularValue converts one textual leaf (or nested object) into a
// protoreflect value for the field's kind.
func singularValue(fd protoreflect.FieldDescriptor, raw interface{}) (protoreflect.Value, error) {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		b, ok := raw.(bool)
		if !ok {
			return protoreflect.Value{}, fmt.Errorf("%w: field %s expects a bool", ErrTypeMismatch, fd.FullName())
		}
		return protoreflect.ValueOfBool(b), nil

	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		n, err := asInt(fd, raw)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return protoreflect.Value{}, fmt.Errorf("%w: field %s value %d out of int32 range", ErrTypeMismatch, fd.FullName(), n)
		}
		return protoreflect.ValueOfInt32(int32(n)), nil

	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		n, err := asInt(fd, raw)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfInt64(n), nil

	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		n, err := asUint(fd, raw)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if n > math.MaxUint32 {
			return protoreflect.Value{}, fmt.Errorf("%w: field %s value %d out of uint32 range", ErrTypeMismatch, fd.FullName(), n)
		}
		return protoreflect.ValueOfUint32(uint32(n)), nil

	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		n, err := asUint(fd, raw)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfUint64(n), nil

	case protoreflect.FloatKind:
		f, err := asFloat(fd, raw)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfFloat32(float32(f)), nil

	case protoreflect.DoubleKind:
		f, err := asFloat(fd, raw)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfFloat64(f), nil

	case protoreflect.StringKind:
		s, ok := raw.(string)
		if !ok {
			return protoreflect.Value{}, fmt.Errorf("%w: field %s expects a string", ErrTypeMismatch, fd.FullName())
		}
		return protoreflect.ValueOfString(s), nil

	case protoreflect.BytesKind:
		s, ok := raw.(string)
		if !ok {
			return protoreflect.Value{}, fmt.Errorf("%w: field %s expects a base64 string", ErrTypeMismatch, fd.FullName())
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return protoreflect.Value{}, fmt.Errorf("%w: field %s: %v", ErrInvalidBytesEncoding, fd.FullName(), err)
		}
		return protoreflect.ValueOfBytes(b), nil

	case protoreflect.EnumKind:
		if s, ok := raw.(string); ok {
			ev := fd.Enum().Values().ByName(protoreflect.Name(s))
			if ev == nil {
				return protoreflect.Value{}, fmt.Errorf("%w: %q for field %s", ErrUnknownEnumValue, s, fd.FullName())
			}
			return protoreflect.ValueOfEnum(ev.Number()), nil
		}
		// Raw integers are used as-is, unchecked against the enum table.
		n, err := asInt(fd, raw)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfEnum(protoreflect.EnumNumber(n)), nil

	case protoreflect.MessageKind:
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return protoreflect.Value{}, fmt.Errorf("%w: field %s expects an object", ErrTypeMismatch, fd.FullName())
		}
		sub := dynamicpb.NewMessage(fd.Message())
		if err := populateMessage(sub, obj); err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfMessage(sub), nil

	default:
		return protoreflect.Value{}, fmt.Errorf("%w: field %s has kind %s", ErrUnsupportedKind, fd.FullName(), fd.Kind())
	}
}

// mapKey converts a JSON object key into a typed protobuf map key.
func mapKey(fd protoreflect.FieldDescriptor, key string) (protoreflect.MapKey, error) {
	switch fd.Kind() {
	case protoreflect.StringKind:
		return protoreflect.ValueOfString(key).MapKey(), nil
	case protoreflect.BoolKind:
		b, err := strconv.ParseBool(key)
		if err != nil {
			return protoreflect.MapKey{}, fmt.Errorf("%w: map key %q for %s is not a bool", ErrTypeMismatch, key, fd.FullName())
		}
		return protoreflect.ValueOfBool(b).MapKey(), nil
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		n, err := strconv.ParseInt(key, 10, 32)
		if err != nil {
			return protoreflect.MapKey{}, fmt.Errorf("%w: map key %q for %s is not an int32", ErrTypeMismatch, key, fd.FullName())
		}
		return protoreflect.ValueOfInt32(int32(n)).MapKey(), nil
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		n, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return protoreflect.MapKey{}, fmt.Errorf("%w: map key %q for %s is not an int64", ErrTypeMismatch, key, fd.FullName())
		}
		return protoreflect.ValueOfInt64(n).MapKey(), nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		n, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return protoreflect.MapKey{}, fmt.Errorf("%w: map key %q for %s is not a uint32", ErrTypeMismatch, key, fd.FullName())
		}
		return protoreflect.ValueOfUint32(uint32(n)).MapKey(), nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return protoreflect.MapKey{}, fmt.Errorf("%w: map key %q for %s is not a uint64", ErrTypeMismatch, key, fd.FullName())
		}
		return protoreflect.ValueOfUint64(n).MapKey(), nil
	default:
		return protoreflect.MapKey{}, fmt.Errorf("%w: map key kind %s on %s", ErrUnsupportedKind, fd.Kind(), fd.FullName())
	}
}

// asInt accepts the numeric representations a parsed JSON document can carry.
func asInt(fd protoreflect.FieldDescriptor, raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: field %s expects an integer, got %q", ErrTypeMismatch, fd.FullName(), v.String())
		}
		return n, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: field %s expects an integer", ErrTypeMismatch, fd.FullName())
	}
}

func asUint(fd protoreflect.FieldDescriptor, raw interface{}) (uint64, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %s expects an unsigned integer, got %q", ErrTypeMismatch, fd.FullName(), v.String())
		}
		return n, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%w: field %s expects an unsigned integer", ErrTypeMismatch, fd.FullName())
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: field %s expects an unsigned integer", ErrTypeMismatch, fd.FullName())
	}
}

func asFloat(fd protoreflect.FieldDescriptor, raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: field %s expects a number, got %q", ErrTypeMismatch, fd.FullName(), v.String())
		}
		return f, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: field %s expects a number", ErrTypeMismatch, fd.FullName())
	}
}

// messageToText renders every populated field of a message.
func messageToText(m protoreflect.Message) map[string]interface{} {
	out := make(map[string]interface{})
	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		out[string(fd.Name())] = fieldToText(fd, v)
		return true
	})
	return out
}

func fieldToText(fd protoreflect.FieldDescriptor, v protoreflect.Value) interface{} {
	switch {
	case fd.IsMap():
		out := make(map[string]interface{})
		v.Map().Range(func(mk protoreflect.MapKey, mv protoreflect.Value) bool {
			out[mk.String()] = scalarToText(fd.MapValue(), mv)
			return true
		})
		return out
	case fd.IsList():
		list := v.List()
		out := make([]interface{}, 0, list.Len())
		for i := 0; i < list.Len(); i++ {
			out = append(out, scalarToText(fd, list.Get(i)))
		}
		return out
	default:
		return scalarToText(fd, v)
	}
}

func scalarToText(fd protoreflect.FieldDescriptor, v protoreflect.Value) interface{} {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return v.Bool()
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return json.Number(strconv.FormatInt(v.Int(), 10))
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return json.Number(strconv.FormatUint(v.Uint(), 10))
	case protoreflect.FloatKind:
		return json.Number(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case protoreflect.DoubleKind:
		return json.Number(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case protoreflect.StringKind:
		return v.String()
	case protoreflect.BytesKind:
		return base64.StdEncoding.EncodeToString(v.Bytes())
	case protoreflect.EnumKind:
		// Enums render numerically; the symbolic name is accepted on input
		// but never produced on output.
		return json.Number(strconv.FormatInt(int64(v.Enum()), 10))
	case protoreflect.MessageKind:
		return messageToText(v.Message())
	default:
		// Unsupported kinds are rejected on the build path; render the raw
		// string form if one ever arrives through Decode.
		return v.String()
	}
}
