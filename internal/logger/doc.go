// Package logger wraps zap for the alarm relay binaries:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration,
//   - leveled shortcuts (Infof, ErrorKV, etc.) that read the logger from a context.
package logger
