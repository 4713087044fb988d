// Package version exposes build metadata of the alarm relay binaries.
//
// Version, Commit and BuildTime are injected with -ldflags "-X ..." at build
// time. Short and Full render them for the CLI `version` subcommand and for
// start-up logs.
package version
