package tracker

import (
	"encoding/json"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/platform"
)

// FileName is the daily record file name inside the data directory
const FileName = "daily_tracker.json"

// Option configures a Tracker
type Option func(*Tracker)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// Tracker is the durable ledger of today's break activity
type Tracker struct {
	path       string
	now        func() time.Time
	mu         sync.Mutex
	record     model.DailyRecord
	onRollover func(prev model.DailyRecord)
}

// New loads the record at path. A missing or unparseable file starts a
// fresh record for today.
func New(path string, opts ...Option) *Tracker {
	t := &Tracker{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.record = t.load()
	return t
}

func (t *Tracker) today() string {
	return t.now().Format(model.DateLayout)
}

func (t *Tracker) load() model.DailyRecord {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[tracker] Warning: could not read %s: %v", t.path, err)
		}
		return model.NewDailyRecord(t.today())
	}

	var r model.DailyRecord
	if err := json.Unmarshal(data, &r); err != nil {
		log.Printf("[tracker] Warning: invalid daily record JSON, starting fresh: %v", err)
		return model.NewDailyRecord(t.today())
	}
	return sanitize(r)
}

// sanitize fills missing groups, drops unknown ones and repairs counters
// so the loaded record satisfies the same invariants as a live one.
func sanitize(r model.DailyRecord) model.DailyRecord {
	clean := model.NewDailyRecord(r.Date)
	for m, n := range r.MuscleGroupCounts {
		if m.IsValid() && n > 0 {
			clean.MuscleGroupCounts[m] = n
		}
	}
	clean.ExercisesDone = append(clean.ExercisesDone, r.ExercisesDone...)
	clean.StretchesDone = append(clean.StretchesDone, r.StretchesDone...)
	clean.BreaksShown = max(r.BreaksShown, 0)
	clean.BreaksCompleted = max(r.BreaksCompleted, 0)
	clean.BreaksEscaped = max(r.BreaksEscaped, 0)
	if over := clean.BreaksCompleted + clean.BreaksEscaped; over > clean.BreaksShown {
		clean.BreaksShown = over
	}
	return clean
}

// ensureToday replaces a stale record with a zeroed one for today. It
// returns the replaced record and whether a rollover happened. Callers
// hold t.mu.
func (t *Tracker) ensureToday() (model.DailyRecord, bool) {
	today := t.today()
	if t.record.Date == today {
		return model.DailyRecord{}, false
	}
	prev := t.record
	t.record = model.NewDailyRecord(today)
	log.Printf("[tracker] Day rollover %s -> %s", prev.Date, today)
	t.persist()
	if t.onRollover != nil {
		t.onRollover(prev.Clone())
	}
	return prev, true
}

// SetRolloverCallback sets the function called with the closed record when
// the day changes. It runs with the tracker locked and must not call back
// into the Tracker.
func (t *Tracker) SetRolloverCallback(callback func(prev model.DailyRecord)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRollover = callback
}

// persist writes the full record. Callers hold t.mu.
func (t *Tracker) persist() {
	data, err := json.MarshalIndent(t.record, "", "  ")
	if err != nil {
		log.Printf("[tracker] Failed to encode daily record: %v", err)
		return
	}
	if err := platform.WriteFileAtomic(t.path, data); err != nil {
		log.Printf("[tracker] Failed to save daily record: %v", err)
	}
}

func (t *Tracker) mutate(fn func(r *model.DailyRecord)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureToday()
	fn(&t.record)
	t.persist()
}

// RecordBreakShown counts a break that is about to be displayed
func (t *Tracker) RecordBreakShown() {
	t.mutate(func(r *model.DailyRecord) {
		r.BreaksShown++
	})
}

// RecordBreakCompleted counts a break whose countdown reached zero
func (t *Tracker) RecordBreakCompleted() {
	t.mutate(func(r *model.DailyRecord) {
		r.BreaksCompleted++
		keepOutcomesWithinShown(r)
	})
}

// RecordBreakEscaped counts a break dismissed early
func (t *Tracker) RecordBreakEscaped() {
	t.mutate(func(r *model.DailyRecord) {
		r.BreaksEscaped++
		keepOutcomesWithinShown(r)
	})
}

// keepOutcomesWithinShown handles a break shown before midnight and ended
// after it: the new day never saw it shown, so it is counted there.
func keepOutcomesWithinShown(r *model.DailyRecord) {
	if r.BreaksCompleted+r.BreaksEscaped > r.BreaksShown {
		log.Printf("[tracker] Outcome without a shown break on %s, counting it as shown", r.Date)
		r.BreaksShown = r.BreaksCompleted + r.BreaksEscaped
	}
}

// RecordExercise credits a completed exercise
func (t *Tracker) RecordExercise(item model.ContentItem) {
	t.mutate(func(r *model.DailyRecord) {
		r.ExercisesDone = append(r.ExercisesDone, t.entry(item))
		credit(r, item)
	})
}

// RecordStretch credits a completed stretch
func (t *Tracker) RecordStretch(item model.ContentItem) {
	t.mutate(func(r *model.DailyRecord) {
		r.StretchesDone = append(r.StretchesDone, t.entry(item))
		credit(r, item)
	})
}

// RecordActivity credits item as a stretch or exercise according to its kind
func (t *Tracker) RecordActivity(item model.ContentItem) {
	if item.Kind == model.KindStretch {
		t.RecordStretch(item)
		return
	}
	t.RecordExercise(item)
}

func (t *Tracker) entry(item model.ContentItem) model.DoneEntry {
	return model.DoneEntry{
		Description: item.Description,
		Time:        t.now().Format(model.TimeLayout),
	}
}

func credit(r *model.DailyRecord, item model.ContentItem) {
	for _, m := range item.Muscles {
		if m.IsValid() {
			r.MuscleGroupCounts[m]++
		}
	}
}

// LeastWorkedMuscles returns the bottom half of muscle groups by today's
// count. Ties keep declaration order.
func (t *Tracker) LeastWorkedMuscles() []model.MuscleGroup {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureToday()
	groups := model.AllMuscleGroups()
	sort.SliceStable(groups, func(i, j int) bool {
		return t.record.MuscleGroupCounts[groups[i]] < t.record.MuscleGroupCounts[groups[j]]
	})
	return groups[:len(groups)/2]
}

// CoverageStats summarizes today. Covered groups are the groups with at
// least one credited activity.
func (t *Tracker) CoverageStats() model.CoverageStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureToday()
	return statsOf(t.record)
}

// StatsOf derives coverage statistics from any record
func StatsOf(r model.DailyRecord) model.CoverageStats {
	return statsOf(r)
}

func statsOf(r model.DailyRecord) model.CoverageStats {
	covered := 0
	for _, m := range model.AllMuscleGroups() {
		if r.MuscleGroupCounts[m] > 0 {
			covered++
		}
	}
	total := model.MuscleGroupCount
	return model.CoverageStats{
		Date:                r.Date,
		Completed:           r.BreaksCompleted,
		Shown:               r.BreaksShown,
		Escaped:             r.BreaksEscaped,
		MuscleGroupsCovered: covered,
		TotalMuscleGroups:   total,
		CoveragePercentage:  float64(covered) / float64(total) * 100,
		ExercisesDone:       len(r.ExercisesDone),
		StretchesDone:       len(r.StretchesDone),
	}
}

// Record returns a copy of today's record
func (t *Tracker) Record() model.DailyRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureToday()
	return t.record.Clone()
}

// MuscleCounts returns today's per-group counts
func (t *Tracker) MuscleCounts() map[model.MuscleGroup]int {
	return t.Record().MuscleGroupCounts
}

// Reset reinitializes the counters for the current date
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.record = model.NewDailyRecord(t.today())
	t.persist()
	log.Printf("[tracker] Daily data reset for %s", t.record.Date)
}

// Refresh runs the rollover check on its own. When the day changed it
// returns the closed record and true.
func (t *Tracker) Refresh() (model.DailyRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ensureToday()
}
