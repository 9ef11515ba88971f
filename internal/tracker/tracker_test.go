package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/movebreak/internal/model"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newTestTracker(t *testing.T) (*Tracker, *fakeClock, string) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 3, 4, 10, 0, 0, 0, time.Local)}
	path := filepath.Join(t.TempDir(), FileName)
	return New(path, WithClock(clock.Now)), clock, path
}

var (
	neckStretch = model.ContentItem{
		Kind:        model.KindStretch,
		Description: "Neck tilt",
		Muscles:     []model.MuscleGroup{model.MuscleNeck},
		Position:    model.PositionSitting,
	}
	squat = model.ContentItem{
		Kind:        model.KindExercise,
		Description: "Squat",
		Muscles:     []model.MuscleGroup{model.MuscleQuads, model.MuscleGlutes},
		Position:    model.PositionStanding,
	}
)

func TestTracker_FreshRecord(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	stats := tr.CoverageStats()
	assert.Equal(t, "2025-03-04", stats.Date)
	assert.Zero(t, stats.Shown)
	assert.Zero(t, stats.MuscleGroupsCovered)
	assert.Equal(t, model.MuscleGroupCount, stats.TotalMuscleGroups)
}

func TestTracker_CompletedBreakCreditsMuscles(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	tr.RecordBreakShown()
	tr.RecordBreakCompleted()
	tr.RecordActivity(neckStretch)
	tr.RecordActivity(squat)

	r := tr.Record()
	assert.Equal(t, 1, r.BreaksShown)
	assert.Equal(t, 1, r.BreaksCompleted)
	assert.Equal(t, 1, r.MuscleGroupCounts[model.MuscleNeck])
	assert.Equal(t, 1, r.MuscleGroupCounts[model.MuscleQuads])
	assert.Equal(t, 1, r.MuscleGroupCounts[model.MuscleGlutes])
	require.Len(t, r.StretchesDone, 1)
	require.Len(t, r.ExercisesDone, 1)
	assert.Equal(t, "Neck tilt", r.StretchesDone[0].Description)
	assert.Equal(t, "10:00:00", r.StretchesDone[0].Time)

	stats := tr.CoverageStats()
	assert.Equal(t, 3, stats.MuscleGroupsCovered)
	assert.InDelta(t, 20.0, stats.CoveragePercentage, 0.001)
	assert.Equal(t, 1, stats.StretchesDone)
	assert.Equal(t, 1, stats.ExercisesDone)
}

func TestTracker_EscapedBreakCreditsNothing(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	tr.RecordBreakShown()
	tr.RecordBreakEscaped()

	r := tr.Record()
	assert.Equal(t, 1, r.BreaksEscaped)
	for m, n := range r.MuscleGroupCounts {
		assert.Zero(t, n, m)
	}
}

func TestTracker_OutcomesNeverExceedShown(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	tr.RecordBreakCompleted()
	tr.RecordBreakEscaped()

	r := tr.Record()
	assert.LessOrEqual(t, r.BreaksCompleted+r.BreaksEscaped, r.BreaksShown)
}

func TestTracker_LeastWorkedMuscles(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	least := tr.LeastWorkedMuscles()
	assert.Equal(t, model.AllMuscleGroups()[:7], least, "ties keep declaration order")

	tr.RecordActivity(neckStretch)
	tr.RecordActivity(squat)

	least = tr.LeastWorkedMuscles()
	assert.Len(t, least, 7)
	assert.NotContains(t, least, model.MuscleNeck)
	assert.Equal(t, model.MuscleShoulders, least[0])
}

func TestTracker_CoverageStatsIdempotent(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	tr.RecordBreakShown()
	tr.RecordActivity(squat)

	assert.Equal(t, tr.CoverageStats(), tr.CoverageStats())
}

func TestTracker_RoundTrip(t *testing.T) {
	tr, clock, path := newTestTracker(t)
	tr.RecordBreakShown()
	tr.RecordBreakShown()
	tr.RecordBreakCompleted()
	tr.RecordActivity(squat)
	tr.RecordBreakEscaped()

	reloaded := New(path, WithClock(clock.Now))
	assert.Equal(t, tr.Record(), reloaded.Record())
}

func TestTracker_DayRollover(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 5, 8, 0, 0, 0, time.Local)}
	path := filepath.Join(t.TempDir(), FileName)

	stale := model.NewDailyRecord("2025-03-04")
	stale.BreaksShown = 7
	stale.BreaksCompleted = 5
	stale.MuscleGroupCounts[model.MuscleNeck] = 4
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	tr := New(path, WithClock(clock.Now))
	stats := tr.CoverageStats()

	assert.Equal(t, "2025-03-05", stats.Date)
	assert.Zero(t, stats.Shown)
	assert.Zero(t, stats.Completed)
	assert.Zero(t, stats.MuscleGroupsCovered)
	assert.Zero(t, stats.CoveragePercentage)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	var persisted model.DailyRecord
	require.NoError(t, json.Unmarshal(onDisk, &persisted))
	assert.Equal(t, "2025-03-05", persisted.Date)
}

func TestTracker_RolloverDuringSession(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	tr.RecordBreakShown()

	clock.Set(time.Date(2025, 3, 5, 0, 0, 5, 0, time.Local))
	tr.RecordBreakCompleted()
	tr.RecordActivity(neckStretch)

	r := tr.Record()
	assert.Equal(t, "2025-03-05", r.Date)
	assert.Equal(t, 1, r.BreaksCompleted)
	assert.Equal(t, 1, r.BreaksShown)
	assert.Equal(t, 1, r.MuscleGroupCounts[model.MuscleNeck])
}

func TestTracker_Refresh(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	tr.RecordBreakShown()

	_, rolled := tr.Refresh()
	assert.False(t, rolled)

	clock.Set(clock.Now().Add(24 * time.Hour))
	prev, rolled := tr.Refresh()
	assert.True(t, rolled)
	assert.Equal(t, "2025-03-04", prev.Date)
	assert.Equal(t, 1, prev.BreaksShown)
	assert.Zero(t, tr.Record().BreaksShown)
}

func TestTracker_RolloverCallback(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	tr.RecordBreakShown()

	var closed []model.DailyRecord
	tr.SetRolloverCallback(func(prev model.DailyRecord) {
		closed = append(closed, prev)
	})

	clock.Set(clock.Now().Add(24 * time.Hour))
	tr.RecordBreakShown()
	tr.Refresh()

	require.Len(t, closed, 1, "fires once per day change whichever call notices it")
	assert.Equal(t, "2025-03-04", closed[0].Date)
	assert.Equal(t, 1, closed[0].BreaksShown)
}

func TestTracker_Reset(t *testing.T) {
	tr, _, path := newTestTracker(t)
	tr.RecordBreakShown()
	tr.RecordActivity(squat)

	tr.Reset()

	assert.Zero(t, tr.CoverageStats().Shown)
	reloaded := New(path, WithClock(tr.now))
	assert.Zero(t, reloaded.Record().MuscleGroupCounts[model.MuscleQuads])
}

func TestTracker_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	tr := New(path)
	assert.Zero(t, tr.CoverageStats().Shown)
}

func TestTracker_SanitizesLoadedRecord(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 4, 9, 0, 0, 0, time.Local)}
	path := filepath.Join(t.TempDir(), FileName)
	raw := `{"date":"2025-03-04","muscleGroupCounts":{"neck":2,"tail":5},"breaksShown":1,"breaksCompleted":2,"breaksEscaped":1}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	r := New(path, WithClock(clock.Now)).Record()
	assert.Equal(t, 2, r.MuscleGroupCounts[model.MuscleNeck])
	assert.NotContains(t, r.MuscleGroupCounts, model.MuscleGroup("tail"))
	assert.Len(t, r.MuscleGroupCounts, model.MuscleGroupCount)
	assert.Equal(t, 3, r.BreaksShown)
	assert.NotNil(t, r.ExercisesDone)
}

func TestTracker_MuscleCountsIsCopy(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	counts := tr.MuscleCounts()
	counts[model.MuscleNeck] = 99

	assert.Zero(t, tr.MuscleCounts()[model.MuscleNeck])
}
