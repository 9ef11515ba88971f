package selector

import (
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ytget/movebreak/internal/catalog"
	"github.com/ytget/movebreak/internal/model"
)

// DefaultHistorySize is how many recent picks per kind are avoided when possible
const DefaultHistorySize = 10

// LeastWorkedSource supplies today's least-worked muscle groups
type LeastWorkedSource interface {
	LeastWorkedMuscles() []model.MuscleGroup
}

// Option configures a Selector
type Option func(*Selector)

// WithRand sets the random source
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) {
		s.rng = rng
	}
}

// WithHistorySize sets how many recent picks are avoided; zero disables it
func WithHistorySize(n int) Option {
	return func(s *Selector) {
		s.historySize = max(n, 0)
	}
}

// Selector chooses content for breaks
type Selector struct {
	catalog     *catalog.Catalog
	source      LeastWorkedSource
	mu          sync.Mutex
	rng         *rand.Rand
	pref        model.PositionPreference
	pools       map[model.ActivityKind][]model.ContentItem
	history     map[model.ActivityKind][]string
	historySize int
}

// New creates a selector with pools filtered by pref
func New(cat *catalog.Catalog, source LeastWorkedSource, pref model.PositionPreference, opts ...Option) *Selector {
	seed := uint64(time.Now().UnixNano())
	s := &Selector{
		catalog:     cat,
		source:      source,
		rng:         rand.New(rand.NewPCG(seed, seed>>1|1)),
		history:     make(map[model.ActivityKind][]string),
		historySize: DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rebuild(pref)
	return s
}

// rebuild recomputes the cached pools. Callers hold s.mu or own s exclusively.
func (s *Selector) rebuild(pref model.PositionPreference) {
	s.pref = pref
	s.pools = make(map[model.ActivityKind][]model.ContentItem, 2)
	for _, kind := range []model.ActivityKind{model.KindStretch, model.KindExercise} {
		all := s.catalog.Items(kind)
		pool := catalog.FilterByPosition(all, pref)
		if len(pool) == 0 {
			log.Printf("[selector] No %s matches position preference %q, using the full catalog", kind, pref)
			pool = all
		}
		s.pools[kind] = pool
	}
}

// SetPositionPreference refilters the pools when the preference changed
func (s *Selector) SetPositionPreference(pref model.PositionPreference) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pref == s.pref {
		return
	}
	s.rebuild(pref)
	s.history = make(map[model.ActivityKind][]string)
}

// PositionPreference returns the preference the pools are filtered by
func (s *Selector) PositionPreference() model.PositionPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pref
}

// Pool returns a copy of the active pool for kind
func (s *Selector) Pool(kind model.ActivityKind) []model.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ContentItem(nil), s.pools[kind]...)
}

// Pick returns one item of the given kind. Items that work a least-worked
// group are preferred; when none exists the whole pool is used. Recently
// picked items are skipped while an alternative remains.
func (s *Selector) Pick(kind model.ActivityKind) model.ContentItem {
	least := s.source.LeastWorkedMuscles()

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.pools[kind]
	candidates := make([]model.ContentItem, 0, len(pool))
	for _, item := range pool {
		if item.Targets(least) {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	if fresh := s.withoutRecent(kind, candidates); len(fresh) > 0 {
		candidates = fresh
	}

	item := candidates[s.rng.IntN(len(candidates))]
	s.remember(kind, item.Description)
	return item
}

func (s *Selector) withoutRecent(kind model.ActivityKind, items []model.ContentItem) []model.ContentItem {
	recent := s.history[kind]
	if len(recent) == 0 {
		return items
	}
	out := make([]model.ContentItem, 0, len(items))
	for _, item := range items {
		seen := false
		for _, d := range recent {
			if d == item.Description {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, item)
		}
	}
	return out
}

func (s *Selector) remember(kind model.ActivityKind, description string) {
	if s.historySize == 0 {
		return
	}
	h := append(s.history[kind], description)
	if len(h) > s.historySize {
		h = h[len(h)-s.historySize:]
	}
	s.history[kind] = h
}
