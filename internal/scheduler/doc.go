// Package scheduler decides when breaks fire. The time math is a set of
// pure functions over config.Settings; Scheduler runs them on a one second
// poll and drives the trigger and pre-warning callbacks.
package scheduler
