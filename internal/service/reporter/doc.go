// Package reporter implements alarm-report: it builds one alarm event from
// command-line options and publishes it to the configured sink, retrying
// failed attempts.
package reporter
