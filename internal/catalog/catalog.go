package catalog

import (
	_ "embed"
	"fmt"
	"math/rand/v2"

	"gopkg.in/yaml.v3"

	"github.com/ytget/movebreak/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

// DefaultBenefit is used when no muscle group has a benefit line
const DefaultBenefit = "Improving overall health and wellness!"

// DefaultMotivation is used when the catalog has no motivation lines
const DefaultMotivation = "Tiny moves, big wins."

type document struct {
	Stretches   []model.ContentItem            `yaml:"stretches"`
	Exercises   []model.ContentItem            `yaml:"exercises"`
	Motivations []string                       `yaml:"motivations"`
	Benefits    map[model.MuscleGroup][]string `yaml:"benefits"`
}

// Catalog is the static content library
type Catalog struct {
	stretches   []model.ContentItem
	exercises   []model.ContentItem
	motivations []string
	benefits    map[model.MuscleGroup][]string
}

// Load parses the embedded catalog
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// MustLoad is Load for program start; it panics if the embedded data is broken
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := validate(doc.Stretches, model.KindStretch); err != nil {
		return nil, err
	}
	if err := validate(doc.Exercises, model.KindExercise); err != nil {
		return nil, err
	}
	for g := range doc.Benefits {
		if !g.IsValid() {
			return nil, fmt.Errorf("benefits: unknown muscle group %q", g)
		}
	}

	return &Catalog{
		stretches:   doc.Stretches,
		exercises:   doc.Exercises,
		motivations: doc.Motivations,
		benefits:    doc.Benefits,
	}, nil
}

func validate(items []model.ContentItem, kind model.ActivityKind) error {
	if len(items) == 0 {
		return fmt.Errorf("catalog has no %s entries", kind)
	}
	for i := range items {
		item := &items[i]
		item.Kind = kind
		if item.Description == "" {
			return fmt.Errorf("%s #%d: empty description", kind, i+1)
		}
		if len(item.Muscles) == 0 {
			return fmt.Errorf("%s #%d: no muscle groups", kind, i+1)
		}
		for _, m := range item.Muscles {
			if !m.IsValid() {
				return fmt.Errorf("%s #%d: unknown muscle group %q", kind, i+1, m)
			}
		}
		if !item.Position.IsValid() {
			return fmt.Errorf("%s #%d: unknown position %q", kind, i+1, item.Position)
		}
	}
	return nil
}

// Stretches returns a copy of every stretch
func (c *Catalog) Stretches() []model.ContentItem {
	return append([]model.ContentItem(nil), c.stretches...)
}

// Exercises returns a copy of every exercise
func (c *Catalog) Exercises() []model.ContentItem {
	return append([]model.ContentItem(nil), c.exercises...)
}

// Items returns a copy of the items of the given kind
func (c *Catalog) Items(kind model.ActivityKind) []model.ContentItem {
	if kind == model.KindStretch {
		return c.Stretches()
	}
	return c.Exercises()
}

// FilterByPosition keeps the items the preference accepts
func FilterByPosition(items []model.ContentItem, pref model.PositionPreference) []model.ContentItem {
	out := make([]model.ContentItem, 0, len(items))
	for _, item := range items {
		if pref.Accepts(item.Position) {
			out = append(out, item)
		}
	}
	return out
}

// Benefit picks one benefit line for the given muscle groups
func (c *Catalog) Benefit(groups []model.MuscleGroup, rng *rand.Rand) string {
	var lines []string
	for _, g := range groups {
		lines = append(lines, c.benefits[g]...)
	}
	if len(lines) == 0 {
		return DefaultBenefit
	}
	return lines[rng.IntN(len(lines))]
}

// Motivation picks one motivation line
func (c *Catalog) Motivation(rng *rand.Rand) string {
	if len(c.motivations) == 0 {
		return DefaultMotivation
	}
	return c.motivations[rng.IntN(len(c.motivations))]
}
