package model

import "strings"

// MuscleGroup identifies one of the fifteen tracked muscle groups
type MuscleGroup string

const (
	MuscleNeck       MuscleGroup = "neck"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleChest      MuscleGroup = "chest"
	MuscleUpperBack  MuscleGroup = "upper_back"
	MuscleLowerBack  MuscleGroup = "lower_back"
	MuscleArms       MuscleGroup = "arms"
	MuscleCore       MuscleGroup = "core"
	MuscleHips       MuscleGroup = "hips"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleQuads      MuscleGroup = "quads"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleCalves     MuscleGroup = "calves"
	MuscleWrists     MuscleGroup = "wrists"
	MuscleAnkles     MuscleGroup = "ankles"
	MuscleFullBody   MuscleGroup = "full_body"
)

// allMuscleGroups holds the declaration order, which is also the tie-break
// order for least-worked ranking.
var allMuscleGroups = []MuscleGroup{
	MuscleNeck,
	MuscleShoulders,
	MuscleChest,
	MuscleUpperBack,
	MuscleLowerBack,
	MuscleArms,
	MuscleCore,
	MuscleHips,
	MuscleGlutes,
	MuscleQuads,
	MuscleHamstrings,
	MuscleCalves,
	MuscleWrists,
	MuscleAnkles,
	MuscleFullBody,
}

// AllMuscleGroups returns every muscle group in declaration order
func AllMuscleGroups() []MuscleGroup {
	out := make([]MuscleGroup, len(allMuscleGroups))
	copy(out, allMuscleGroups)
	return out
}

// MuscleGroupCount is the size of the closed muscle group set
const MuscleGroupCount = 15

// String returns the string representation of MuscleGroup
func (m MuscleGroup) String() string {
	return string(m)
}

// Index returns the declaration position of m, or -1 if m is unknown
func (m MuscleGroup) Index() int {
	for i, g := range allMuscleGroups {
		if g == m {
			return i
		}
	}
	return -1
}

// IsValid reports whether m belongs to the closed set
func (m MuscleGroup) IsValid() bool {
	return m.Index() >= 0
}

// Label returns a human readable name such as "Upper back"
func (m MuscleGroup) Label() string {
	s := strings.ReplaceAll(string(m), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseMuscleGroup converts a persisted name into a MuscleGroup
func ParseMuscleGroup(s string) (MuscleGroup, bool) {
	m := MuscleGroup(strings.ToLower(strings.TrimSpace(s)))
	return m, m.IsValid()
}
