// Package session composes break sessions: it decides how many activities
// a break shows, holds the picked items provisionally and records exactly
// one outcome per session with the tracker.
package session
