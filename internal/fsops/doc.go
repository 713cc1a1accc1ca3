// Package fsops provides the file capabilities used while preparing a run:
// delete, copy and read.
//
// OS works on the real filesystem. Memory keeps files in a map and records
// every call, so callers can check which operations ran and in what order.
//
// A missing file is reported as ErrMissingArtifact, wrapped with the
// operation and path:
//
//	if err := fsops.OS{}.Remove(path); fsops.IsMissing(err) {
//	    // nothing to clean up
//	}
package fsops
