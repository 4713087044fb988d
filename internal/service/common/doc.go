// Package common holds helpers shared by several services.
//
// EventOptions collects the alarm fields given on the command line and builds
// the event, using the process identity when no reporter is named.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
