package catalog

import (
	"fmt"
	"strings"

	"github.com/ytget/movebreak/internal/model"
)

// Rescale limits
const (
	MinDoseSeconds = 3
	MinDoseReps    = 3
	SecondsPerRep  = 2
	MinRangeSpread = 5
	RangeHeadroom  = 10
)

// Rescale shrinks a dose so it fits into allotted seconds. Per-side doses
// get half the budget. Holds never drop below MinDoseSeconds and ranges are
// compressed but keep at least MinRangeSpread between low and high.
func Rescale(d model.Dose, allotted int) model.Dose {
	if allotted <= 0 {
		return d
	}
	budget := allotted
	if d.PerSide {
		budget = allotted / 2
	}

	out := d
	switch {
	case d.IsRange():
		high := min(d.MaxSeconds, budget)
		low := min(d.Seconds, high-MinRangeSpread, budget-RangeHeadroom)
		low = max(low, MinDoseSeconds)
		high = max(high, low+MinRangeSpread)
		out.Seconds, out.MaxSeconds = low, high
	case d.Seconds > 0:
		out.Seconds = max(min(d.Seconds, budget), MinDoseSeconds)
	}

	if d.Reps > 0 && d.Reps*SecondsPerRep > budget {
		out.Reps = max(MinDoseReps, budget/2)
	}
	return out
}

// Render returns the item description followed by the dose in words
func Render(item model.ContentItem, d model.Dose) string {
	suffix := doseText(d)
	if suffix == "" {
		return item.Description
	}
	return item.Description + ", " + suffix
}

func doseText(d model.Dose) string {
	var parts []string
	switch {
	case d.IsRange():
		parts = append(parts, fmt.Sprintf("hold %d-%d sec", d.Seconds, d.MaxSeconds))
	case d.Seconds > 0 && d.PerSide:
		parts = append(parts, fmt.Sprintf("%d sec", d.Seconds))
	case d.Seconds > 0:
		parts = append(parts, fmt.Sprintf("hold %d sec", d.Seconds))
	}
	if d.Reps > 0 {
		parts = append(parts, fmt.Sprintf("%d times", d.Reps))
	}
	if len(parts) == 0 {
		return ""
	}
	text := strings.Join(parts, ", ")
	if d.PerSide {
		text += " each side"
	}
	return text
}
