// Package schematest builds an in-memory descriptor set for tests, so test
// code does not depend on protoc or on checked-in binary artifacts.
//
// The catalog mirrors a small ping/pong contract under the
// "company.project.v1" package:
//
//	enum Status { OK = 0; DEGRADED = 1; FAILED = 2; }
//	message Meta { string source = 1; int64 ts = 2; Status status = 3; }
//	message Ping {
//	    int32 seq = 1; string note = 2; bytes blob = 3; Status status = 4;
//	    Meta meta = 5; repeated int32 readings = 6; map<string,string> labels = 7;
//	}
//	message Pong { int32 seq = 1; Status status = 2; string echo = 3; }
//
// plus a second package "other.project.v1" with its own Ping message, to
// exercise short-name ambiguity.
package schematest

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// TopicPrefix is the namespace prefix under which the test messages live.
const TopicPrefix = "company.project.v1"

// FileDescriptorSet returns the test catalog as a descriptor set.
func FileDescriptorSet() *descriptorpb.FileDescriptorSet {
	return &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			contractFile(),
			otherFile(),
		},
	}
}

// DescriptorSetBytes returns the test catalog in its serialized form, the
// same shape a protoc --descriptor_set_out artifact has. It panics on
// marshal failure, which cannot happen for the fixed catalog above.
func DescriptorSetBytes() []byte {
	raw, err := proto.Marshal(FileDescriptorSet())
	if err != nil {
		panic(fmt.Sprintf("schematest: marshal descriptor set: %v", err))
	}
	return raw
}

func contractFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("company/project/v1/messages.proto"),
		Package: proto.String("company.project.v1"),
		Syntax:  proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: proto.String("Status"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					enumValue("OK", 0),
					enumValue("DEGRADED", 1),
					enumValue("FAILED", 2),
				},
			},
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Meta"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("source", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("ts", 2, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					typedField("status", 3, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".company.project.v1.Status"),
				},
			},
			{
				Name: proto.String("Ping"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("seq", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("note", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("blob", 3, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
					typedField("status", 4, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".company.project.v1.Status"),
					typedField("meta", 5, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".company.project.v1.Meta"),
					repeatedField("readings", 6, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					mapField("labels", 7, ".company.project.v1.Ping.LabelsEntry"),
				},
				NestedType: []*descriptorpb.DescriptorProto{
					mapEntry("LabelsEntry",
						scalarField("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
						scalarField("value", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					),
				},
			},
			{
				Name: proto.String("Pong"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("seq", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					typedField("status", 2, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".company.project.v1.Status"),
					scalarField("echo", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
		},
	}
}

func otherFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("other/project/v1/ping.proto"),
		Package: proto.String("other.project.v1"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Ping"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("seq", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				},
			},
		},
	}
}

func enumValue(name string, number int32) *descriptorpb.EnumValueDescriptorProto {
	return &descriptorpb.EnumValueDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
	}
}

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func typedField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, number, typ)
	f.TypeName = proto.String(typeName)
	return f
}

func repeatedField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, number, typ)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func mapField(name string, number int32, entryTypeName string) *descriptorpb.FieldDescriptorProto {
	f := typedField(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, entryTypeName)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func mapEntry(name string, key, value *descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:    proto.String(name),
		Field:   []*descriptorpb.FieldDescriptorProto{key, value},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
}
