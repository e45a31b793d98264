package schedule

import (
	"math"
	"strings"
	"time"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/canon"
)

// StudyDay is one day's assigned reading: a date, a position in the plan,
// and one or more reading segments in canonical order.
type StudyDay struct {
	// Date is the calendar date of the reading.
	Date time.Time

	// DayNumber is the 1-indexed position within the plan.
	DayNumber int

	// Segments are the readings for the day, in canonical order. Never empty
	// in a valid schedule.
	Segments []*ReadingSegment

	// TotalDays is the actual length of the plan this day belongs to. Set
	// after generation from the produced schedule, which may be shorter than
	// the requested day count.
	TotalDays int
}

// TotalVerses returns the verse count across the day's segments.
func (d *StudyDay) TotalVerses() int {
	total := 0
	for _, s := range d.Segments {
		total += s.VerseCount
	}
	return total
}

// TotalWords returns the estimated word count across the day's segments.
func (d *StudyDay) TotalWords() int {
	total := 0
	for _, s := range d.Segments {
		total += s.WordCount
	}
	return total
}

// TotalMinutes returns the estimated reading time across the day's segments.
func (d *StudyDay) TotalMinutes() int {
	total := 0
	for _, s := range d.Segments {
		total += s.EstimatedMinutes
	}
	return total
}

// TotalChapters returns the chapter count across the day's segments.
func (d *StudyDay) TotalChapters() int {
	total := 0
	for _, s := range d.Segments {
		total += s.ChapterCount()
	}
	return total
}

// ProgressPercent returns how far through the plan this day is, as a
// percentage with one decimal place.
func (d *StudyDay) ProgressPercent() float64 {
	if d.TotalDays == 0 {
		return 0
	}
	return math.Round(float64(d.DayNumber)/float64(d.TotalDays)*100*10) / 10
}

// PrimaryBook returns the book of the day's first segment. The primary book
// drives the day's testament, genre, and frontmatter.
func (d *StudyDay) PrimaryBook() *canon.Book {
	if len(d.Segments) == 0 {
		return nil
	}
	return d.Segments[0].Book
}

// Testament returns the testament of the primary book.
func (d *StudyDay) Testament() canon.Testament {
	if b := d.PrimaryBook(); b != nil {
		return b.Testament
	}
	return ""
}

// Genre returns the genre of the primary book.
func (d *StudyDay) Genre() canon.Genre {
	if b := d.PrimaryBook(); b != nil {
		return b.Genre
	}
	return ""
}

// Books returns the distinct books read on this day, in segment order.
func (d *StudyDay) Books() []*canon.Book {
	var books []*canon.Book
	seen := make(map[string]bool)
	for _, s := range d.Segments {
		if !seen[s.Book.Name] {
			seen[s.Book.Name] = true
			books = append(books, s.Book)
		}
	}
	return books
}

// ReadingSummary returns the day's readings as a comma-separated reference
// list, e.g. "Malachi 3-4, Matthew 1".
func (d *StudyDay) ReadingSummary() string {
	parts := make([]string, len(d.Segments))
	for i, s := range d.Segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// Tags returns the day's Obsidian tags: the base tags, testament, and genre,
// plus one tag per book when includeBooks is set.
func (d *StudyDay) Tags(includeBooks bool) []string {
	tags := []string{"bible-study", "daily"}
	if t := d.Testament(); t != "" {
		tags = append(tags, t.Tag())
	}
	if g := d.Genre(); g != "" {
		tags = append(tags, g.Tag())
	}
	if includeBooks {
		for _, b := range d.Books() {
			tags = append(tags, b.Slug())
		}
	}
	return tags
}
