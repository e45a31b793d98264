// Package schedule turns a corpus into a day-by-day reading plan.
//
// Distribution is a greedy forward scan with look-ahead: each day aims at an
// ideal verse load recomputed from what remains, short books are taken
// whole, and chapter ranges extend until the next chapter would overshoot.
// The scan can finish the corpus early, so a plan may come out shorter than
// requested; the produced schedule's length is authoritative.
package schedule

import (
	"fmt"
	"time"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/canon"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
)

const (
	// extendThreshold is the fraction of the day's ideal verse load at
	// which a candidate range is close enough to take and stop extending.
	extendThreshold = 0.80

	// closeThreshold is the fraction of the day's ideal verse load at
	// which the day is considered full.
	closeThreshold = 0.85

	// shortBookChapters is the chapter count at or below which a book is
	// never split across days.
	shortBookChapters = 3
)

// Errors returned by Generate.
var (
	// ErrInvalidDayCount indicates a requested day count below 1.
	ErrInvalidDayCount = fmt.Errorf("invalid day count: %w", errors.ErrInvalidInput)

	// ErrEmptyCorpus indicates a corpus with no books in scope.
	ErrEmptyCorpus = fmt.Errorf("empty corpus: %w", errors.ErrInvalidInput)
)

// Generate distributes the corpus over at most totalDays days starting at
// startDate, one StudyDay per calendar day. Books are consumed in canonical
// order and every chapter is assigned exactly once. The last day absorbs
// whatever remains, and the corpus running out early yields fewer days than
// requested; callers must take day counts from the returned schedule.
func Generate(c *canon.Corpus, startDate time.Time, totalDays, wpm int) ([]*StudyDay, error) {
	if totalDays < 1 {
		return nil, &errors.ValidationError{
			Field:   "days",
			Message: fmt.Sprintf("must be at least 1, got %d", totalDays),
			Err:     ErrInvalidDayCount,
		}
	}
	if c == nil || len(c.Books) == 0 {
		return nil, &errors.ValidationError{
			Field:   "corpus",
			Message: "no books in scope",
			Err:     ErrEmptyCorpus,
		}
	}

	totalVerses := c.TotalVerses()
	versesAssigned := 0 // finalized into completed days only

	var days []*StudyDay
	var daySegments []*ReadingSegment
	dayVerses := 0

	closeDay := func() {
		days = append(days, &StudyDay{
			Date:      startDate.AddDate(0, 0, len(days)),
			DayNumber: len(days) + 1,
			Segments:  daySegments,
		})
		versesAssigned += dayVerses
		daySegments = nil
		dayVerses = 0
	}

	bookIndex := 0
	chapterIndex := 1

	for bookIndex < len(c.Books) && len(days) < totalDays {
		daysRemaining := totalDays - len(days)
		ideal := float64(totalVerses-versesAssigned) / float64(daysRemaining)
		book := c.Books[bookIndex]

		if book.Chapters <= shortBookChapters && chapterIndex == 1 {
			// Short books are one segment, whole.
			seg, err := NewSegment(book, 1, book.Chapters, wpm)
			if err != nil {
				return nil, err
			}
			daySegments = append(daySegments, seg)
			dayVerses += seg.VerseCount
			bookIndex++
			chapterIndex = 1
		} else {
			start := chapterIndex
			end := chapterIndex
			for end < book.Chapters {
				rangeVerses, err := book.VersesInRange(start, end+1)
				if err != nil {
					return nil, err
				}
				withNext := dayVerses + rangeVerses
				if float64(withNext) > ideal && dayVerses > 0 {
					break
				}
				if float64(withNext) >= extendThreshold*ideal {
					end++
					break
				}
				end++
			}
			seg, err := NewSegment(book, start, end, wpm)
			if err != nil {
				return nil, err
			}
			daySegments = append(daySegments, seg)
			dayVerses += seg.VerseCount
			if end >= book.Chapters {
				bookIndex++
				chapterIndex = 1
			} else {
				chapterIndex = end + 1
			}
		}

		if daysRemaining > 1 && float64(dayVerses) >= closeThreshold*ideal {
			closeDay()
		}
	}

	if len(daySegments) > 0 {
		closeDay()
	}

	for _, d := range days {
		d.TotalDays = len(days)
	}
	return days, nil
}
