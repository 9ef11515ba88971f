package report

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ytget/movebreak/internal/model"
	"github.com/ytget/movebreak/internal/platform"
	"github.com/ytget/movebreak/internal/tracker"
)

// Workbook sheet names
const (
	SheetSummary    = "Summary"
	SheetMuscles    = "Muscles"
	SheetActivities = "Activities"
)

// ExportFileName returns the workbook name for a record date
func ExportFileName(date string) string {
	return date + ".xlsx"
}

// ExportXLSX writes record to path as a workbook with a summary sheet, a
// per-muscle sheet and the list of completed activities.
func ExportXLSX(record model.DailyRecord, path string) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetMuscles, SheetActivities} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DEEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})

	stats := tracker.StatsOf(record)

	// Summary
	f.SetCellValue(SheetSummary, "A1", "Metric")
	f.SetCellValue(SheetSummary, "B1", "Value")
	f.SetCellStyle(SheetSummary, "A1", "B1", headerStyle)
	f.SetColWidth(SheetSummary, "A", "A", 26)
	f.SetColWidth(SheetSummary, "B", "B", 16)

	summary := []struct {
		label string
		value any
	}{
		{"Date", record.Date},
		{"Breaks shown", stats.Shown},
		{"Breaks completed", stats.Completed},
		{"Breaks escaped", stats.Escaped},
		{"Exercises done", stats.ExercisesDone},
		{"Stretches done", stats.StretchesDone},
		{"Muscle groups covered", fmt.Sprintf("%d/%d", stats.MuscleGroupsCovered, stats.TotalMuscleGroups)},
		{"Coverage %", stats.CoveragePercentage},
	}
	for i, row := range summary {
		r := i + 2
		f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", r), row.label)
		f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", r), row.value)
	}
	f.SetCellStyle(SheetSummary, "A2", fmt.Sprintf("A%d", len(summary)+1), labelStyle)

	// Muscles
	f.SetCellValue(SheetMuscles, "A1", "Region")
	f.SetCellValue(SheetMuscles, "B1", "Muscle group")
	f.SetCellValue(SheetMuscles, "C1", "Count")
	f.SetCellStyle(SheetMuscles, "A1", "C1", headerStyle)
	f.SetColWidth(SheetMuscles, "A", "B", 18)

	r := 2
	for _, region := range Regions {
		for _, m := range region.Muscles {
			f.SetCellValue(SheetMuscles, fmt.Sprintf("A%d", r), region.Name)
			f.SetCellValue(SheetMuscles, fmt.Sprintf("B%d", r), m.Label())
			f.SetCellValue(SheetMuscles, fmt.Sprintf("C%d", r), record.MuscleGroupCounts[m])
			r++
		}
	}
	f.SetCellValue(SheetMuscles, fmt.Sprintf("A%d", r), "Full Body")
	f.SetCellValue(SheetMuscles, fmt.Sprintf("B%d", r), model.MuscleFullBody.Label())
	f.SetCellValue(SheetMuscles, fmt.Sprintf("C%d", r), record.MuscleGroupCounts[model.MuscleFullBody])

	// Activities
	f.SetCellValue(SheetActivities, "A1", "Time")
	f.SetCellValue(SheetActivities, "B1", "Kind")
	f.SetCellValue(SheetActivities, "C1", "Activity")
	f.SetCellStyle(SheetActivities, "A1", "C1", headerStyle)
	f.SetColWidth(SheetActivities, "A", "B", 12)
	f.SetColWidth(SheetActivities, "C", "C", 60)

	r = 2
	for _, group := range []struct {
		kind    model.ActivityKind
		entries []model.DoneEntry
	}{
		{model.KindStretch, record.StretchesDone},
		{model.KindExercise, record.ExercisesDone},
	} {
		for _, e := range group.entries {
			f.SetCellValue(SheetActivities, fmt.Sprintf("A%d", r), e.Time)
			f.SetCellValue(SheetActivities, fmt.Sprintf("B%d", r), group.kind.String())
			f.SetCellValue(SheetActivities, fmt.Sprintf("C%d", r), e.Description)
			r++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	log.Printf("[report] Exported %s to %s", record.Date, path)
	return nil
}
