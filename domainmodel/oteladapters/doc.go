// Package oteladapters provides OpenTelemetry implementations of the
// domainmodel observability interfaces, for users who want plug-and-play
// observability for dispatch operations without implementing the interfaces
// themselves.
package oteladapters
