package canon

import (
	"fmt"
	"strings"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
)

// Book describes one canonical book and its chapter layout.
// Verse counts are per the KJV versification; word counts are approximate
// whole-book totals used for reading-time estimates.
type Book struct {
	// Name is the full book name (e.g., "Genesis", "1 Corinthians").
	Name string `json:"name"`

	// Abbrev is the OSIS-style abbreviation (e.g., "Gen", "1Cor").
	Abbrev string `json:"abbrev"`

	// Testament is filled from the enclosing data file at load time.
	Testament Testament `json:"testament,omitempty"`

	// Genre classifies the book (law, history, wisdom, ...).
	Genre Genre `json:"genre"`

	// Order is the position within the 66-book canon (1-indexed).
	// Assigned at load time; stable across scopes.
	Order int `json:"-"`

	// Chapters is the number of chapters.
	Chapters int `json:"chapters"`

	// ChapterVerses holds the verse count of each chapter, in order.
	ChapterVerses []int `json:"chapter_verses"`

	// TotalVerses is the verse count for the whole book.
	TotalVerses int `json:"total_verses"`

	// TotalWords is the approximate word count for the whole book.
	TotalWords int `json:"total_words"`
}

// Validate checks the book's internal consistency. A violation means the
// corpus data itself is bad and loading must fail.
func (b *Book) Validate() error {
	if b.Name == "" {
		return errors.NewData("", "book with empty name")
	}
	if b.Chapters < 1 {
		return errors.NewData(b.Name, "chapters must be positive")
	}
	if len(b.ChapterVerses) != b.Chapters {
		return errors.NewData(b.Name, fmt.Sprintf("chapter_verses has %d entries, chapters is %d", len(b.ChapterVerses), b.Chapters))
	}
	sum := 0
	for i, n := range b.ChapterVerses {
		if n < 1 {
			return errors.NewData(b.Name, fmt.Sprintf("chapter %d has verse count %d", i+1, n))
		}
		sum += n
	}
	if sum != b.TotalVerses {
		return errors.NewData(b.Name, fmt.Sprintf("chapter_verses sums to %d, total_verses is %d", sum, b.TotalVerses))
	}
	if b.TotalWords < 1 {
		return errors.NewData(b.Name, "total_words must be positive")
	}
	if !b.Genre.IsValid() {
		return errors.NewData(b.Name, "unknown genre "+string(b.Genre))
	}
	return nil
}

// VersesInRange returns the number of verses in chapters start..end
// (1-indexed, inclusive).
func (b *Book) VersesInRange(start, end int) (int, error) {
	if start < 1 || end > b.Chapters || start > end {
		return 0, errors.NewRange(b.Name, start, end, b.Chapters)
	}
	total := 0
	for _, n := range b.ChapterVerses[start-1 : end] {
		total += n
	}
	return total, nil
}

// WordsInRange estimates the word count of chapters start..end using the
// book's uniform words-per-verse density. The truncating conversion is part
// of the contract: downstream totals are reproduced exactly from it.
func (b *Book) WordsInRange(start, end int) (int, error) {
	verses, err := b.VersesInRange(start, end)
	if err != nil {
		return 0, err
	}
	wordsPerVerse := float64(b.TotalWords) / float64(b.TotalVerses)
	return int(float64(verses) * wordsPerVerse), nil
}

// ReadingMinutesInRange estimates reading time for chapters start..end at
// the given words-per-minute pace.
func (b *Book) ReadingMinutesInRange(start, end, wpm int) (int, error) {
	words, err := b.WordsInRange(start, end)
	if err != nil {
		return 0, err
	}
	return ReadingMinutes(words, wpm), nil
}

// Slug returns the book name as a lowercase hyphenated identifier
// (e.g., "song-of-solomon", "1-corinthians").
func (b *Book) Slug() string {
	return strings.ReplaceAll(strings.ToLower(b.Name), " ", "-")
}
