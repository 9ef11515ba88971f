package model

// DateLayout is the calendar day key format of a DailyRecord
const DateLayout = "2006-01-02"

// TimeLayout is the wall clock format stored with done entries
const TimeLayout = "15:04:05"

// DoneEntry is one credited activity in a day's done list
type DoneEntry struct {
	Description string `json:"description"`
	Time        string `json:"time"`
}

// DailyRecord is the persisted ledger of a single calendar day
type DailyRecord struct {
	Date              string              `json:"date"`
	MuscleGroupCounts map[MuscleGroup]int `json:"muscleGroupCounts"`
	ExercisesDone     []DoneEntry         `json:"exercisesDone"`
	StretchesDone     []DoneEntry         `json:"stretchesDone"`
	BreaksShown       int                 `json:"breaksShown"`
	BreaksCompleted   int                 `json:"breaksCompleted"`
	BreaksEscaped     int                 `json:"breaksEscaped"`
}

// NewDailyRecord returns a zeroed record for date with every muscle group
// present at count zero.
func NewDailyRecord(date string) DailyRecord {
	counts := make(map[MuscleGroup]int, MuscleGroupCount)
	for _, m := range allMuscleGroups {
		counts[m] = 0
	}
	return DailyRecord{
		Date:              date,
		MuscleGroupCounts: counts,
		ExercisesDone:     []DoneEntry{},
		StretchesDone:     []DoneEntry{},
	}
}

// Clone returns a deep copy safe to hand to callers
func (r DailyRecord) Clone() DailyRecord {
	out := r
	out.MuscleGroupCounts = make(map[MuscleGroup]int, len(r.MuscleGroupCounts))
	for k, v := range r.MuscleGroupCounts {
		out.MuscleGroupCounts[k] = v
	}
	out.ExercisesDone = append([]DoneEntry{}, r.ExercisesDone...)
	out.StretchesDone = append([]DoneEntry{}, r.StretchesDone...)
	return out
}

// CoverageStats summarizes a day's progress
type CoverageStats struct {
	Date                string  `json:"date"`
	Completed           int     `json:"completed"`
	Shown               int     `json:"shown"`
	Escaped             int     `json:"escaped"`
	MuscleGroupsCovered int     `json:"muscleGroupsCovered"`
	TotalMuscleGroups   int     `json:"totalMuscleGroups"`
	CoveragePercentage  float64 `json:"coveragePercentage"`
	ExercisesDone       int     `json:"exercisesDone"`
	StretchesDone       int     `json:"stretchesDone"`
}
