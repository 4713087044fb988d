// Package listener implements alarm-listener: a gRPC server that accepts
// alarm events and hands each one to a handler.
//
// The default handler logs every event. Nothing is stored between calls.
package listener
