// Package model defines the domain data shared across the app: muscle groups,
// positions, activity and position preferences, catalog items, daily records
// and the state enums used by sessions and the scheduler. Enums are plain
// strings so they can be persisted and shown in the UI directly.
package model
