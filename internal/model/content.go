package model

// Dose is the structured amount attached to a catalog item. Seconds and
// Reps are mutually exclusive in practice; both zero means "for the whole
// allotted time". MaxSeconds above Seconds turns the hold into a range.
type Dose struct {
	Seconds    int  `yaml:"seconds,omitempty" json:"seconds,omitempty"`
	MaxSeconds int  `yaml:"max_seconds,omitempty" json:"maxSeconds,omitempty"`
	Reps       int  `yaml:"reps,omitempty" json:"reps,omitempty"`
	PerSide    bool `yaml:"per_side,omitempty" json:"perSide,omitempty"`
}

// IsRange reports whether the hold is a low-high range
func (d Dose) IsRange() bool {
	return d.Seconds > 0 && d.MaxSeconds > d.Seconds
}

// IsZero reports whether the dose carries no amount
func (d Dose) IsZero() bool {
	return d.Seconds == 0 && d.Reps == 0
}

// ContentItem is one immutable catalog entry, either a stretch or an exercise
type ContentItem struct {
	Kind        ActivityKind  `yaml:"-" json:"kind"`
	Description string        `yaml:"description" json:"description"`
	Muscles     []MuscleGroup `yaml:"muscles" json:"muscles"`
	Position    Position      `yaml:"position" json:"position"`
	Difficulty  int           `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Dose        `yaml:",inline" json:"dose"`
}

// Targets reports whether the item works any of the given groups
func (c ContentItem) Targets(groups []MuscleGroup) bool {
	for _, m := range c.Muscles {
		for _, g := range groups {
			if m == g {
				return true
			}
		}
	}
	return false
}
