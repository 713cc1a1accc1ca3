// Package staging copies a preset configuration over the active module's
// configuration file.
//
// The copy result is recorded and logged but never changes the flow of a
// run: a missing preset still prints the executed command. When a Reader
// is set, the previous and new destination contents are compared and a
// unified diff is logged at debug level.
package staging
