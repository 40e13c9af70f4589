// Package shell contains the application side of the example: mapping domain
// events to persistable records, retrying concurrency conflicts, and the
// persist-dispatch-clear flow that ties the repository and the dispatcher
// together.
package shell
