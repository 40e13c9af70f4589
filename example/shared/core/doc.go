// Package core contains the domain side of the example application: the
// Project aggregate built on the domainmodel entity bases, and the domain
// events its business methods record.
//
// Nothing in this package knows about persistence or dispatch - the shell
// packages wire those around it.
package core
