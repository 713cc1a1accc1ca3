// Package dispatch maps one command-line invocation to a scenario
// preparation.
//
// Every call to Dispatch is a single pass from Dispatching to Done:
//
//  1. print the usage hint when the argument count is not exactly one
//  2. run the cleanup stage (log file and swap files)
//  3. print the working directory
//  4. on a known scenario, stage its preset and print its instructions;
//     otherwise list every known scenario in declared order
//
// None of the error paths abort the run. They are recorded in the Outcome.
package dispatch
