package alarm

// Converter maps events to and from an external message form M.
//
// Implementations must be lossless: FromWire(ToWire(e)) == e for every event,
// and ToWire(FromWire(m)) == m for every message.
type Converter[M any] interface {
	ToWire(e Event) M
	FromWire(m M) Event
}
