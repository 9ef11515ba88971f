package selector

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/movebreak/internal/catalog"
	"github.com/ytget/movebreak/internal/model"
)

type staticSource []model.MuscleGroup

func (s staticSource) LeastWorkedMuscles() []model.MuscleGroup {
	return s
}

const testCatalog = `
stretches:
  - description: Neck roll
    muscles: [neck]
    position: sitting
  - description: Calf stretch
    muscles: [calves]
    position: standing
  - description: Chest opener
    muscles: [chest]
    position: standing
  - description: Floor twist
    muscles: [lower_back]
    position: lying
exercises:
  - description: Squat
    muscles: [quads, glutes]
    position: standing
  - description: Plank
    muscles: [core]
    position: lying
`

func newTestSelector(t *testing.T, least staticSource, pref model.PositionPreference, opts ...Option) *Selector {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(7, 11)))}, opts...)
	return New(cat, least, pref, opts...)
}

func TestPick_PrefersLeastWorked(t *testing.T) {
	s := newTestSelector(t, staticSource{model.MuscleNeck, model.MuscleCalves}, model.PreferAll)

	hits := map[string]int{}
	for i := 0; i < 1000; i++ {
		hits[s.Pick(model.KindStretch).Description]++
	}

	targeted := hits["Neck roll"] + hits["Calf stretch"]
	assert.Greater(t, targeted, hits["Chest opener"])
	assert.Greater(t, hits["Neck roll"], hits["Chest opener"])
	assert.Equal(t, 1000, targeted, "well-worked items are only a fallback")
}

func TestPick_FallsBackToWholePool(t *testing.T) {
	s := newTestSelector(t, staticSource{model.MuscleWrists}, model.PreferAll)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[s.Pick(model.KindStretch).Description] = true
	}
	assert.Len(t, seen, 4)
}

func TestPick_RespectsPositionPreference(t *testing.T) {
	s := newTestSelector(t, staticSource{model.MuscleLowerBack}, model.PreferSittingStanding)

	for i := 0; i < 100; i++ {
		item := s.Pick(model.KindStretch)
		assert.NotEqual(t, model.PositionLying, item.Position)
	}
}

func TestPick_EmptyFilteredPoolUsesFullCatalog(t *testing.T) {
	s := newTestSelector(t, staticSource{model.MuscleCore}, model.PreferSittingOnly)

	assert.Len(t, s.Pool(model.KindExercise), 2, "no sitting exercise exists")
	item := s.Pick(model.KindExercise)
	assert.NotEmpty(t, item.Description)
}

func TestPick_AvoidsRecentItems(t *testing.T) {
	s := newTestSelector(t, staticSource{model.MuscleWrists}, model.PreferAll, WithHistorySize(3))

	first := []string{}
	for i := 0; i < 4; i++ {
		first = append(first, s.Pick(model.KindStretch).Description)
	}
	assert.ElementsMatch(t, []string{"Neck roll", "Calf stretch", "Chest opener", "Floor twist"}, first)
}

func TestPick_HistoryDisabled(t *testing.T) {
	s := newTestSelector(t, staticSource{model.MuscleNeck}, model.PreferAll, WithHistorySize(0))

	for i := 0; i < 10; i++ {
		assert.Equal(t, "Neck roll", s.Pick(model.KindStretch).Description)
	}
}

func TestSetPositionPreference(t *testing.T) {
	s := newTestSelector(t, staticSource{model.MuscleNeck}, model.PreferAll)
	assert.Len(t, s.Pool(model.KindStretch), 4)

	s.SetPositionPreference(model.PreferStandingOnly)
	assert.Equal(t, model.PreferStandingOnly, s.PositionPreference())

	pool := s.Pool(model.KindStretch)
	assert.Len(t, pool, 2)
	for _, item := range pool {
		assert.Equal(t, model.PositionStanding, item.Position)
	}
}
