package alarm

// Identity resolves the name of the currently running process.
// Implementations must be safe for concurrent use and return a stable value.
type Identity interface {
	ProcessName() string
}

// IdentityFunc adapts an ordinary function to the Identity interface.
type IdentityFunc func() string

// ProcessName calls f.
func (f IdentityFunc) ProcessName() string {
	return f()
}
