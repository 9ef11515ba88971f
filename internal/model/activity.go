package model

import "strings"

// ActivityKind tells stretches and exercises apart
type ActivityKind string

const (
	KindStretch  ActivityKind = "stretch"
	KindExercise ActivityKind = "exercise"
)

// String returns the string representation of ActivityKind
func (k ActivityKind) String() string {
	return string(k)
}

// Other returns the opposite kind
func (k ActivityKind) Other() ActivityKind {
	if k == KindStretch {
		return KindExercise
	}
	return KindStretch
}

// ActivityType restricts which kinds of activity a break may contain
type ActivityType string

const (
	ActivityBoth         ActivityType = "both"
	ActivityStretchOnly  ActivityType = "stretch"
	ActivityExerciseOnly ActivityType = "exercise"
)

// String returns the string representation of ActivityType
func (a ActivityType) String() string {
	return string(a)
}

// Allows reports whether a break of this type may contain kind
func (a ActivityType) Allows(kind ActivityKind) bool {
	switch a {
	case ActivityStretchOnly:
		return kind == KindStretch
	case ActivityExerciseOnly:
		return kind == KindExercise
	default:
		return true
	}
}

// ParseActivityType accepts persisted names and a few aliases. Unknown
// values fall back to ActivityBoth.
func ParseActivityType(s string) ActivityType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stretch", "stretches", "stretch_only":
		return ActivityStretchOnly
	case "exercise", "exercises", "exercise_only":
		return ActivityExerciseOnly
	default:
		return ActivityBoth
	}
}

// Position is the body position an item is performed in
type Position string

const (
	PositionSitting  Position = "sitting"
	PositionStanding Position = "standing"
	PositionLying    Position = "lying"
)

// String returns the string representation of Position
func (p Position) String() string {
	return string(p)
}

// IsValid reports whether p is one of the known positions
func (p Position) IsValid() bool {
	return p == PositionSitting || p == PositionStanding || p == PositionLying
}

// PositionPreference filters catalog items by position
type PositionPreference string

const (
	PreferAll             PositionPreference = "all"
	PreferSittingStanding PositionPreference = "sitting_standing"
	PreferSittingOnly     PositionPreference = "sitting"
	PreferStandingOnly    PositionPreference = "standing"
	PreferLyingOnly       PositionPreference = "lying"
)

// String returns the string representation of PositionPreference
func (p PositionPreference) String() string {
	return string(p)
}

// Accepts reports whether an item in position pos passes this preference
func (p PositionPreference) Accepts(pos Position) bool {
	switch p {
	case PreferAll:
		return true
	case PreferSittingOnly:
		return pos == PositionSitting
	case PreferStandingOnly:
		return pos == PositionStanding
	case PreferLyingOnly:
		return pos == PositionLying
	default:
		return pos == PositionSitting || pos == PositionStanding
	}
}

// ParsePositionPreference converts a persisted name. Unknown values fall
// back to PreferSittingStanding.
func ParsePositionPreference(s string) PositionPreference {
	switch p := PositionPreference(strings.ToLower(strings.TrimSpace(s))); p {
	case PreferAll, PreferSittingStanding, PreferSittingOnly, PreferStandingOnly, PreferLyingOnly:
		return p
	default:
		return PreferSittingStanding
	}
}
