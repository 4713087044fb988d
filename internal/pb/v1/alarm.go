package pb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	// Registers google/protobuf/empty.proto, the Report response type.
	_ "google.golang.org/protobuf/types/known/emptypb"
)

const (
	// FilePath is the registry path of the alarm schema.
	FilePath = "alarms/v1/alarm.proto"
	// PackageName is the protobuf package of the alarm schema.
	PackageName = "alarms.v1"
	// AlarmServiceName is the fully-qualified gRPC service name.
	AlarmServiceName = PackageName + ".AlarmService"
	// ReportMethodName is the short name of the Report RPC.
	ReportMethodName = "Report"
	// ReportFullMethodName is the gRPC method path of the Report RPC.
	ReportFullMethodName = "/" + AlarmServiceName + "/" + ReportMethodName
)

// Field numbers of alarms.v1.Alarm, in wire order.
const (
	AlarmNameFieldNumber          protoreflect.FieldNumber = 1
	RaisedFieldNumber             protoreflect.FieldNumber = 2
	NodeNameFieldNumber           protoreflect.FieldNumber = 3
	ProblemDescriptionFieldNumber protoreflect.FieldNumber = 4
	ParametersFieldNumber         protoreflect.FieldNumber = 5
	SeverityFieldNumber           protoreflect.FieldNumber = 6
)

//nolint:gochecknoglobals // Descriptors are immutable after init, like generated code.
var (
	// File is the alarms/v1/alarm.proto file descriptor.
	File protoreflect.FileDescriptor
	// Alarm describes the alarms.v1.Alarm message.
	Alarm protoreflect.MessageDescriptor
	// AlarmService describes the alarms.v1.AlarmService service.
	AlarmService protoreflect.ServiceDescriptor
	// AlarmType creates alarms.v1.Alarm messages.
	AlarmType protoreflect.MessageType
)

//nolint:gochecknoinits // Mirrors generated code, which builds descriptors at init.
func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("build %s: %v", FilePath, err))
	}

	if err = protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("register %s: %v", FilePath, err))
	}

	File = fd
	Alarm = fd.Messages().ByName("Alarm")
	AlarmService = fd.Services().ByName("AlarmService")
	AlarmType = dynamicpb.NewMessageType(Alarm)
}

// NewAlarm returns an empty alarms.v1.Alarm message.
func NewAlarm() *dynamicpb.Message {
	return dynamicpb.NewMessage(Alarm)
}

// AlarmField returns the descriptor of the alarms.v1.Alarm field with the given number.
func AlarmField(number protoreflect.FieldNumber) protoreflect.FieldDescriptor {
	return Alarm.Fields().ByNumber(number)
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(FilePath),
		Package:    proto.String(PackageName),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"google/protobuf/empty.proto"},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/oshokin/alarm-relay/internal/pb/v1;pb"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Alarm"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("alarm_name", "alarmName", AlarmNameFieldNumber, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					field("raised", "raised", RaisedFieldNumber, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
					field("node_name", "nodeName", NodeNameFieldNumber, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					field(
						"problem_description",
						"problemDescription",
						ProblemDescriptionFieldNumber,
						descriptorpb.FieldDescriptorProto_TYPE_STRING,
					),
					field("parameters", "parameters", ParametersFieldNumber, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					// Severity is a byte on the wire contract; proto has no 8-bit type.
					field("severity", "severity", SeverityFieldNumber, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("AlarmService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name:       proto.String(ReportMethodName),
						InputType:  proto.String("." + PackageName + ".Alarm"),
						OutputType: proto.String(".google.protobuf.Empty"),
					},
				},
			},
		},
	}
}

func field(
	name string,
	jsonName string,
	number protoreflect.FieldNumber,
	kind descriptorpb.FieldDescriptorProto_Type,
) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName),
		Number:   proto.Int32(int32(number)),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     kind.Enum(),
	}
}
