// Package pb holds the protobuf schema of the alarm wire message.
//
// The schema (alarms/v1/alarm.proto) is assembled from a FileDescriptorProto
// at init time and registered in the global registry, so messages are handled
// as dynamicpb values and gRPC reflection can serve the file.
package pb
