// Package sweep runs the species chain over a list of loading levels.
//
// Levels are independent and run on a bounded errgroup. A failing level
// either aborts the sweep or is recorded in [Result.Skipped], depending on
// the [Policy].
package sweep
