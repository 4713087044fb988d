// Package config defines the settings shared by the alarm relay binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Besides the gRPC server address and timeouts, Config selects the sink the
// reporter publishes to (grpc, mqtt, redis or stdout) and the payload encoding.
package config
