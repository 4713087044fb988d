// Package identity resolves the name the current process reports alarms under.
package identity
