// Package app wires the settings store, tracker, selector, composer and
// scheduler together and exposes the actions a host shell calls.
package app
