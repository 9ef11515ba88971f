package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ytget/movebreak/internal/model"
)

// Report layout
const (
	ProgressBarWidth = 20
	maxMuscleBar     = 20
	maxSuggestions   = 3
	ruleWidth        = 50
)

// Region groups muscle groups for the daily breakdown
type Region struct {
	Name    string
	Muscles []model.MuscleGroup
}

// Regions lists the body regions in report order. Full body is reported
// on its own line.
var Regions = []Region{
	{"Upper Body", []model.MuscleGroup{
		model.MuscleNeck, model.MuscleShoulders, model.MuscleChest,
		model.MuscleUpperBack, model.MuscleArms, model.MuscleWrists,
	}},
	{"Core", []model.MuscleGroup{model.MuscleCore, model.MuscleLowerBack}},
	{"Lower Body", []model.MuscleGroup{
		model.MuscleHips, model.MuscleGlutes, model.MuscleQuads,
		model.MuscleHamstrings, model.MuscleCalves, model.MuscleAnkles,
	}},
}

// ProgressBar renders percentage as "[#####...............] 25%"
func ProgressBar(percentage float64, width int) string {
	if width <= 0 {
		width = ProgressBarWidth
	}
	filled := int(float64(width) * percentage / 100)
	filled = min(max(filled, 0), width)
	return fmt.Sprintf("[%s%s] %.0f%%", strings.Repeat("#", filled), strings.Repeat(".", width-filled), percentage)
}

// Recommendation returns the coverage advice line for percentage
func Recommendation(percentage float64) string {
	switch {
	case percentage < 40:
		return "Keep going! Aim for more variety in muscle groups"
	case percentage < 70:
		return "Good progress! Try to work some neglected areas"
	default:
		return "Excellent coverage! You're working your whole body"
	}
}

// Unworked returns the muscle groups with a zero count in canonical order
func Unworked(record model.DailyRecord) []model.MuscleGroup {
	var out []model.MuscleGroup
	for _, m := range model.AllMuscleGroups() {
		if record.MuscleGroupCounts[m] == 0 {
			out = append(out, m)
		}
	}
	return out
}

// DailyReport renders the full progress report for a day
func DailyReport(record model.DailyRecord, stats model.CoverageStats) string {
	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s", rule)
	line("          DAILY FITNESS REPORT  %s", record.Date)
	line("%s", rule)
	line("")
	line("Breaks Completed: %d of %d shown (%d escaped)", stats.Completed, stats.Shown, stats.Escaped)
	line("Exercises Done: %d", stats.ExercisesDone)
	line("Stretches Done: %d", stats.StretchesDone)
	line("")
	line("Full Body Coverage:")
	line("  %s", ProgressBar(stats.CoveragePercentage, ProgressBarWidth))
	line("  %d/%d muscle groups", stats.MuscleGroupsCovered, stats.TotalMuscleGroups)

	if stats.MuscleGroupsCovered > 0 {
		line("")
		line("Muscle Groups Worked Today:")
		line("%s", strings.Repeat("-", 30))
		for _, region := range Regions {
			total := 0
			for _, m := range region.Muscles {
				total += record.MuscleGroupCounts[m]
			}
			if total == 0 {
				continue
			}
			line("")
			line("%s:", region.Name)
			for _, m := range region.Muscles {
				count := record.MuscleGroupCounts[m]
				if count == 0 {
					continue
				}
				line("  %-15s %s (%d)", m.Label(), strings.Repeat("#", min(count*2, maxMuscleBar)), count)
			}
		}
		if n := record.MuscleGroupCounts[model.MuscleFullBody]; n > 0 {
			line("")
			line("Full Body: %d activities", n)
		}
	}

	line("")
	line("%s", rule)
	line("RECOMMENDATIONS:")
	line("- %s", Recommendation(stats.CoveragePercentage))
	if stats.MuscleGroupsCovered > 0 {
		if unworked := Unworked(record); len(unworked) > 0 {
			names := make([]string, 0, maxSuggestions)
			for _, m := range unworked[:min(len(unworked), maxSuggestions)] {
				names = append(names, m.Label())
			}
			line("- Consider working: %s", strings.Join(names, ", "))
		}
	}
	b.WriteString(rule)

	return b.String()
}

// CoverageLevel names how well the day covered the body
func CoverageLevel(percentage float64) string {
	switch {
	case percentage >= 80:
		return "Champion"
	case percentage >= 60:
		return "Great"
	case percentage >= 40:
		return "Good"
	default:
		return "Building"
	}
}

// CoverageLine renders the one-line coverage summary shown in the tray
func CoverageLine(stats model.CoverageStats) string {
	if stats.Completed == 0 {
		return "Complete your first break to start tracking coverage"
	}
	return fmt.Sprintf("%s Coverage: %d/%d muscles (%.0f%%)",
		CoverageLevel(stats.CoveragePercentage), stats.MuscleGroupsCovered, stats.TotalMuscleGroups, stats.CoveragePercentage)
}

// TopMuscles returns up to n worked groups, most worked first
func TopMuscles(record model.DailyRecord, n int) []model.MuscleGroup {
	var worked []model.MuscleGroup
	for _, m := range model.AllMuscleGroups() {
		if record.MuscleGroupCounts[m] > 0 {
			worked = append(worked, m)
		}
	}
	sort.SliceStable(worked, func(i, j int) bool {
		return record.MuscleGroupCounts[worked[i]] > record.MuscleGroupCounts[worked[j]]
	})
	return worked[:min(len(worked), max(n, 0))]
}
