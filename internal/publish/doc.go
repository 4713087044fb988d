// Package publish delivers alarm events to a sink.
//
// Every Publisher converts the event to its wire form before it leaves the
// process. The gRPC publisher calls the listener's Report RPC, the MQTT and
// Redis publishers carry the encoded message as payload, and the Writer prints
// it. New picks the implementation from configuration.
package publish
