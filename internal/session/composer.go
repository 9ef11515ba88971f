package session

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/movebreak/internal/catalog"
	"github.com/ytget/movebreak/internal/model"
)

// SessionIDPrefix is prepended to generated session IDs
const SessionIDPrefix = "break_"

// SplitThresholdSeconds is the break length from which a mixed break shows
// a stretch and an exercise together.
const SplitThresholdSeconds = 60

// maxKeptSessions bounds the sessions kept for late outcome callbacks
const maxKeptSessions = 16

var (
	// ErrUnknownSession is returned for an ID the composer does not hold
	ErrUnknownSession = errors.New("unknown session")

	// ErrNoActiveSession is returned when no break is on screen
	ErrNoActiveSession = errors.New("no active session")
)

// Picker chooses one catalog item of a kind
type Picker interface {
	Pick(kind model.ActivityKind) model.ContentItem
}

// Recorder receives break bookkeeping
type Recorder interface {
	RecordBreakShown()
	RecordBreakCompleted()
	RecordBreakEscaped()
	RecordActivity(item model.ContentItem)
}

// Flavor supplies the benefit and motivation lines of a session
type Flavor interface {
	Benefit(groups []model.MuscleGroup, rng *rand.Rand) string
	Motivation(rng *rand.Rand) string
}

// Option configures a Composer
type Option func(*Composer)

// WithRand sets the random source used for flavor lines
func WithRand(rng *rand.Rand) Option {
	return func(c *Composer) {
		c.rng = rng
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// WithFlavor sets the benefit and motivation source
func WithFlavor(f Flavor) Option {
	return func(c *Composer) {
		c.flavor = f
	}
}

// Composer builds sessions and records their outcomes
type Composer struct {
	picker   Picker
	recorder Recorder
	flavor   Flavor
	rng      *rand.Rand
	now      func() time.Time

	mu            sync.Mutex
	sessions      map[string]*Session
	order         []string
	current       *Session
	lastSubMinute model.ActivityKind
	onUpdate      func(*Session)
}

// NewComposer creates a composer
func NewComposer(picker Picker, recorder Recorder, opts ...Option) *Composer {
	seed := uint64(time.Now().UnixNano())
	c := &Composer{
		picker:   picker,
		recorder: recorder,
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUpdateCallback sets the function called after an outcome is recorded
func (c *Composer) SetUpdateCallback(callback func(*Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = callback
}

type slot struct {
	kind     model.ActivityKind
	allotted int
}

// plan decides the activity kinds and their time. Callers hold c.mu.
func (c *Composer) plan(breakSeconds int, activityType model.ActivityType) []slot {
	if breakSeconds < SplitThresholdSeconds {
		kind := model.KindStretch
		switch activityType {
		case model.ActivityStretchOnly:
		case model.ActivityExerciseOnly:
			kind = model.KindExercise
		default:
			if c.lastSubMinute != "" {
				kind = c.lastSubMinute.Other()
			}
			c.lastSubMinute = kind
		}
		return []slot{{kind, breakSeconds}}
	}

	switch activityType {
	case model.ActivityStretchOnly:
		return []slot{{model.KindStretch, breakSeconds}}
	case model.ActivityExerciseOnly:
		return []slot{{model.KindExercise, breakSeconds}}
	default:
		half := breakSeconds / 2
		return []slot{{model.KindStretch, half}, {model.KindExercise, half}}
	}
}

// Compose builds the session for a break that is about to be displayed and
// counts it as shown. A previous session still pending is recorded as
// escaped first.
func (c *Composer) Compose(breakSeconds int, activityType model.ActivityType) *Session {
	c.mu.Lock()
	prev := c.current
	slots := c.plan(breakSeconds, activityType)
	c.mu.Unlock()

	if prev != nil && !prev.Outcome().IsFinished() {
		log.Printf("[session] Session %s replaced while pending, recording escape", prev.ID)
		_, _ = c.Escape(prev.ID)
	}

	activities := make([]Activity, 0, len(slots))
	for _, sl := range slots {
		item := c.picker.Pick(sl.kind)
		activities = append(activities, Activity{
			Item:            item,
			Dose:            catalog.Rescale(item.Dose, sl.allotted),
			AllottedSeconds: sl.allotted,
		})
	}

	s := &Session{
		ID:           generateSessionID(),
		CreatedAt:    c.now(),
		BreakSeconds: breakSeconds,
		Activities:   activities,
		outcome:      model.OutcomePending,
	}

	c.mu.Lock()
	if c.flavor != nil {
		s.Benefit = c.flavor.Benefit(s.Muscles(), c.rng)
		s.Motivation = c.flavor.Motivation(c.rng)
	}
	c.keep(s)
	c.current = s
	c.mu.Unlock()

	c.recorder.RecordBreakShown()
	log.Printf("[session] Composed %s: %d activities over %ds", s.ID, len(activities), breakSeconds)
	return s
}

// keep stores s and evicts the oldest sessions. Callers hold c.mu.
func (c *Composer) keep(s *Session) {
	c.sessions[s.ID] = s
	c.order = append(c.order, s.ID)
	for len(c.order) > maxKeptSessions {
		delete(c.sessions, c.order[0])
		c.order = c.order[1:]
	}
}

// Current returns the last composed session, or nil
func (c *Composer) Current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Active returns the current session if it is still pending
func (c *Composer) Active() (*Session, error) {
	s := c.Current()
	if s == nil || s.Outcome().IsFinished() {
		return nil, ErrNoActiveSession
	}
	return s, nil
}

// Complete records that the countdown of session id reached zero and
// credits its activities. It returns false when another outcome won.
func (c *Composer) Complete(id string) (bool, error) {
	s, err := c.lookup(id)
	if err != nil {
		return false, err
	}
	if !s.finish(model.OutcomeCompleted, c.now()) {
		return false, nil
	}

	c.recorder.RecordBreakCompleted()
	for _, a := range s.Activities {
		c.recorder.RecordActivity(a.Item)
	}
	c.notify(s)
	return true, nil
}

// Escape records that session id was dismissed early. Nothing is credited.
// It returns false when another outcome won.
func (c *Composer) Escape(id string) (bool, error) {
	s, err := c.lookup(id)
	if err != nil {
		return false, err
	}
	if !s.finish(model.OutcomeEscaped, c.now()) {
		return false, nil
	}

	c.recorder.RecordBreakEscaped()
	c.notify(s)
	return true, nil
}

func (c *Composer) lookup(id string) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return s, nil
}

func (c *Composer) notify(s *Session) {
	c.mu.Lock()
	callback := c.onUpdate
	c.mu.Unlock()

	if callback != nil {
		callback(s)
	}
}

// generateSessionID generates a unique, time ordered session ID
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(SessionIDPrefix+"%d", time.Now().UnixNano())
	}
	return SessionIDPrefix + id.String()
}
