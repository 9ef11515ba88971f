package session

import (
	"sync"
	"time"

	"github.com/ytget/movebreak/internal/catalog"
	"github.com/ytget/movebreak/internal/model"
)

// Activity is one item shown in a break, with its dose fitted to the
// seconds it was allotted.
type Activity struct {
	Item            model.ContentItem
	Dose            model.Dose
	AllottedSeconds int
}

// Kind returns the activity kind
func (a Activity) Kind() model.ActivityKind {
	return a.Item.Kind
}

// Text returns the description with the rescaled dose
func (a Activity) Text() string {
	return catalog.Render(a.Item, a.Dose)
}

// Session is one displayed break
type Session struct {
	ID           string
	CreatedAt    time.Time
	BreakSeconds int
	Activities   []Activity
	Benefit      string
	Motivation   string

	mu       sync.Mutex
	outcome  model.Outcome
	finished time.Time
}

// Outcome returns the recorded outcome, OutcomePending until one is set
func (s *Session) Outcome() model.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// FinishedAt returns when the outcome was recorded
func (s *Session) FinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// finish sets the outcome unless one is already set
func (s *Session) finish(o model.Outcome, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome.IsFinished() {
		return false
	}
	s.outcome = o
	s.finished = at
	return true
}

// Headline returns the title shown above the activities
func (s *Session) Headline() string {
	switch {
	case len(s.Activities) > 1:
		return "Stretch and move!"
	case len(s.Activities) == 1 && s.Activities[0].Kind() == model.KindStretch:
		return "Time to stretch!"
	default:
		return "Quick exercise break!"
	}
}

// Muscles returns the distinct muscle groups across all activities
func (s *Session) Muscles() []model.MuscleGroup {
	var out []model.MuscleGroup
	seen := map[model.MuscleGroup]bool{}
	for _, a := range s.Activities {
		for _, m := range a.Item.Muscles {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}
