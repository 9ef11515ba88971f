package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/tracker"
)

func sampleRecord() model.DailyRecord {
	r := model.NewDailyRecord("2025-03-04")
	r.MuscleGroupCounts[model.MuscleNeck] = 3
	r.MuscleGroupCounts[model.MuscleShoulders] = 12
	r.MuscleGroupCounts[model.MuscleCore] = 2
	r.MuscleGroupCounts[model.MuscleFullBody] = 1
	r.BreaksShown = 4
	r.BreaksCompleted = 3
	r.BreaksEscaped = 1
	r.StretchesDone = []model.DoneEntry{{Description: "Neck roll", Time: "09:30:00"}}
	r.ExercisesDone = []model.DoneEntry{{Description: "Plank", Time: "10:30:00"}}
	return r
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "[" + strings.Repeat(".", 20) + "] 0%"},
		{50, "[" + strings.Repeat("#", 10) + strings.Repeat(".", 10) + "] 50%"},
		{100, "[" + strings.Repeat("#", 20) + "] 100%"},
		{150, "[" + strings.Repeat("#", 20) + "] 150%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.pct, 0); got != tt.want {
			t.Errorf("ProgressBar(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestRecommendationAndLevel(t *testing.T) {
	assert.Contains(t, Recommendation(10), "Keep going")
	assert.Contains(t, Recommendation(40), "Good progress")
	assert.Contains(t, Recommendation(70), "Excellent")

	assert.Equal(t, "Building", CoverageLevel(39))
	assert.Equal(t, "Good", CoverageLevel(40))
	assert.Equal(t, "Great", CoverageLevel(60))
	assert.Equal(t, "Champion", CoverageLevel(80))
}

func TestDailyReport(t *testing.T) {
	r := sampleRecord()
	out := DailyReport(r, tracker.StatsOf(r))

	assert.Contains(t, out, "DAILY FITNESS REPORT  2025-03-04")
	assert.Contains(t, out, "Breaks Completed: 3 of 4 shown (1 escaped)")
	assert.Contains(t, out, "4/15 muscle groups")
	assert.Contains(t, out, "Upper Body:")
	assert.Contains(t, out, "Core:")
	assert.NotContains(t, out, "Lower Body:", "regions without work are omitted")
	assert.Contains(t, out, "Full Body: 1 activities")
	assert.Contains(t, out, "Shoulders       "+strings.Repeat("#", 20)+" (12)", "bars are capped")
	assert.Contains(t, out, "Consider working: Chest, Upper back, Lower back")
}

func TestDailyReport_Empty(t *testing.T) {
	r := model.NewDailyRecord("2025-03-04")
	out := DailyReport(r, tracker.StatsOf(r))

	assert.Contains(t, out, "0/15 muscle groups")
	assert.NotContains(t, out, "Muscle Groups Worked Today")
	assert.NotContains(t, out, "Consider working")
	assert.Contains(t, out, "Keep going")
}

func TestUnworkedAndTopMuscles(t *testing.T) {
	r := sampleRecord()
	assert.Len(t, Unworked(r), 11)
	assert.Equal(t, []model.MuscleGroup{model.MuscleShoulders, model.MuscleNeck}, TopMuscles(r, 2))
	assert.Empty(t, TopMuscles(model.NewDailyRecord("2025-03-04"), 3))
}

func TestCoverageLine(t *testing.T) {
	assert.Contains(t, CoverageLine(model.CoverageStats{}), "first break")

	r := sampleRecord()
	assert.Equal(t, "Building Coverage: 4/15 muscles (27%)", CoverageLine(tracker.StatsOf(r)))
}
