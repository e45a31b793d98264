package schedule

import (
	"fmt"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
)

// Validate checks a generated schedule's internal invariants: at least one
// day, day numbers sequential from 1, no empty days, and strictly
// consecutive dates. A failure means the generator itself misbehaved, so
// callers must abort without writing any output.
func Validate(days []*StudyDay) error {
	if len(days) == 0 {
		return errors.NewSchedule(0, "empty schedule")
	}
	for i, d := range days {
		if d.DayNumber != i+1 {
			return errors.NewSchedule(d.DayNumber, fmt.Sprintf("day number %d at position %d", d.DayNumber, i+1))
		}
		if len(d.Segments) == 0 {
			return errors.NewSchedule(d.DayNumber, "day has no readings")
		}
		if d.TotalDays != len(days) {
			return errors.NewSchedule(d.DayNumber, fmt.Sprintf("total days %d, schedule has %d", d.TotalDays, len(days)))
		}
		if i > 0 && !days[i-1].Date.AddDate(0, 0, 1).Equal(d.Date) {
			return errors.NewSchedule(d.DayNumber, "dates not consecutive")
		}
	}
	return nil
}

// Totals aggregates a schedule's counts for manifests and summaries.
type Totals struct {
	Days     int `json:"days"`
	Chapters int `json:"chapters"`
	Verses   int `json:"verses"`
	Words    int `json:"words"`
	Minutes  int `json:"minutes"`
}

// Summarize computes schedule-wide totals.
func Summarize(days []*StudyDay) Totals {
	t := Totals{Days: len(days)}
	for _, d := range days {
		t.Chapters += d.TotalChapters()
		t.Verses += d.TotalVerses()
		t.Words += d.TotalWords()
		t.Minutes += d.TotalMinutes()
	}
	return t
}
