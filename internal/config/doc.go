// Package config holds the user Settings record, its defaults and clamping
// rules, and the JSON Store that persists it with atomic replacement.
package config
