// Package wire defines the over-the-wire alarm message and its codecs.
//
// Message mirrors the alarms.v1.Alarm schema field for field. FromEvent and
// ToEvent convert losslessly between Message and the core alarm.Event, and
// Marshal/Unmarshal serialize a Message as binary protobuf or protojson.
package wire
