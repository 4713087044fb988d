// Package codec implements the encode and decode subcommands of alarm-report,
// converting alarm events to and from their printable wire form.
package codec
