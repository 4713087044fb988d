// Package alarm contains the core alarm event type.
//
// An Event is an immutable snapshot of one alarm observation: whether the named
// condition is raised, who reported it, a description, an opaque parameter
// payload and a severity. Conversion to and from external message forms is
// expressed through the Converter interface so this package stays free of any
// transport types.
package alarm
