// Package alarm implements the gRPC transport for alarm events.
//
// The server side decodes alarms.v1.Alarm reports into domain events and hands
// them to a Handler supplied by the consuming system; the client side encodes
// domain events and sends them with the Report RPC.
package alarm
